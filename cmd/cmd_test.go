package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FilipRuta/sight-readia/internal/game"
	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/internal/summary"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/musicxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const melody = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="4.0">
  <part id="P1">
    <measure number="1">
      <attributes>
        <divisions>1</divisions>
        <key><fifths>0</fifths></key>
        <time><beats>2</beats><beat-type>4</beat-type></time>
        <clef><sign>G</sign><line>2</line></clef>
      </attributes>
      <note><pitch><step>C</step><octave>4</octave></pitch><duration>1</duration><type>quarter</type></note>
      <note><pitch><step>D</step><octave>4</octave></pitch><duration>1</duration><type>quarter</type></note>
    </measure>
  </part>
</score-partwise>`

const badClef = `<score-partwise><part id="P1"><measure number="1">
  <attributes><clef><sign>X</sign><line>2</line></clef></attributes>
</measure></part></score-partwise>`

func TestNoteName(t *testing.T) {
	assert.Equal(t, "C4", noteName(60))
	assert.Equal(t, "F#4", noteName(66))
	assert.Equal(t, "C-1", noteName(0))
	assert.Equal(t, "G9", noteName(127))
	assert.Equal(t, "?", noteName(-1))
	assert.Equal(t, "C4 E4", spell([]int{60, 64}))
}

func TestRouter(t *testing.T) {
	router := newRouter(logger.NewNopLogger(), true)
	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec
	}

	t.Run("health", func(t *testing.T) {
		rec := do(http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("summary", func(t *testing.T) {
		rec := do(http.MethodPost, "/scores", melody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		var s summary.Summary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
		assert.Equal(t, 1, s.Measures)
		assert.Equal(t, 2, s.Notes)
		assert.Equal(t, 60, s.Lowest)
		assert.Equal(t, 62, s.Highest)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := do(http.MethodPost, "/scores", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("format error", func(t *testing.T) {
		rec := do(http.MethodPost, "/scores", badClef)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "clef")
		assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.RequestID)
	})

	t.Run("bad query", func(t *testing.T) {
		rec := do(http.MethodPost, "/scores?grandStaff=maybe", melody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := do(http.MethodGet, "/scores", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/scores", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

type fakeSource struct {
	events []contracts.MIDI
}

func (f *fakeSource) Stop() error                                  { return nil }
func (f *fakeSource) ListDevices() ([]contracts.DeviceInfo, error) { return nil, nil }
func (f *fakeSource) SelectDevice(int) error                       { return nil }
func (f *fakeSource) StartCapture(ch chan contracts.MIDI) {
	for _, ev := range f.events {
		ch <- ev
	}
}

func key(on bool, code byte) contracts.MIDI {
	if on {
		return contracts.MIDI{Command: byte(contracts.NoteOn), Note: code, Velocity: 100}
	}
	return contracts.MIDI{Command: byte(contracts.NoteOff), Note: code}
}

func TestPlay(t *testing.T) {
	log = logger.NewNopLogger()
	score, err := musicxml.Parse(melody, contracts.WithParseLogger(log))
	require.NoError(t, err)

	source := &fakeSource{events: []contracts.MIDI{
		key(true, 61), key(false, 61),
		key(true, 60), key(false, 60),
		key(true, 62),
	}}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err = play(ctx, &out, score, source, contracts.FullKeyboardRange, settings{
		options: game.Options{WaitForRelease: true},
	})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"play C4",
		"wrong C#4, expected C4",
		"ok (1) next D4",
		"done, 2 points",
	}, "\n")+"\n", out.String())
}

func TestPlayOutOfRange(t *testing.T) {
	log = logger.NewNopLogger()
	score, err := musicxml.Parse(melody, contracts.WithParseLogger(log))
	require.NoError(t, err)

	var out bytes.Buffer
	err = play(context.Background(), &out, score, &fakeSource{}, contracts.NoteRange{Low: 80, High: 90}, settings{})
	require.NoError(t, err)
	assert.Equal(t, "nothing to play in this range\n", out.String())
}

func TestInspectAndExportCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "melody.musicxml")
	require.NoError(t, os.WriteFile(path, []byte(melody), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"inspect", "--compact", "--log-level", "error", path})
	require.NoError(t, rootCmd.Execute())
	var s summary.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, 2, s.Notes)
	assert.Equal(t, "2/4", s.StaffHeads[0].Time)

	out.Reset()
	midPath := filepath.Join(dir, "melody.mid")
	rootCmd.SetArgs([]string{"export", "-o", midPath, "--log-level", "error", path})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, midPath+"\n", out.String())
	assert.FileExists(t, midPath)
}
