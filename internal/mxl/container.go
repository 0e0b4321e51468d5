package mxl

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrNoRootFile is returned when a compressed MusicXML archive holds no score.
var ErrNoRootFile = errors.New("no MusicXML root file in archive")

const containerPath = "META-INF/container.xml"

type container struct {
	RootFiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

// ReadFile loads a score document from disk. Files ending in .mxl are read as compressed
// MusicXML; anything else is returned as-is.
func ReadFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(filename), ".mxl") {
		return ReadCompressed(data)
	}
	return string(data), nil
}

// ReadCompressed extracts the root score from a compressed MusicXML archive. The root is the first
// rootfile listed in META-INF/container.xml, or else the first .xml/.musicxml entry outside META-INF.
func ReadCompressed(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	rootPath, err := rootFilePath(files)
	if err != nil {
		return "", err
	}
	f, ok := files[rootPath]
	if !ok {
		return "", fmt.Errorf("%w: %s listed but missing", ErrNoRootFile, rootPath)
	}
	return readZipFile(f)
}

func rootFilePath(files map[string]*zip.File) (string, error) {
	if f, ok := files[containerPath]; ok {
		raw, err := readZipFile(f)
		if err != nil {
			return "", err
		}
		var c container
		dec := xml.NewDecoder(strings.NewReader(raw))
		dec.CharsetReader = charset.NewReaderLabel
		if err := dec.Decode(&c); err != nil {
			return "", fmt.Errorf("decode %s: %w", containerPath, err)
		}
		for _, rf := range c.RootFiles {
			if rf.FullPath != "" {
				return path.Clean(rf.FullPath), nil
			}
		}
	}

	var candidate string
	for name := range files {
		if strings.HasPrefix(name, "META-INF/") {
			continue
		}
		ext := strings.ToLower(path.Ext(name))
		if (ext == ".xml" || ext == ".musicxml") && (candidate == "" || name < candidate) {
			candidate = name
		}
	}
	if candidate == "" {
		return "", ErrNoRootFile
	}
	return candidate, nil
}

func readZipFile(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	return string(data), nil
}
