package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/FilipRuta/sight-readia/internal/summary"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/musicxml"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxScoreBytes = 16 << 20

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves score summaries over HTTP",
	Long: `Starts an HTTP server. POST a MusicXML or .mxl body to /scores to get its summary;
add ?grandStaff=false to ignore the bottom staff.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ServeAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, addr)
	},
}

func serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(log, cfg.GrandStaff),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("listening", log.Field().String("addr", addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}

func newRouter(logger contracts.Logger, grandStaffDefault bool) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.HandleFunc("/scores", handleScore(logger, grandStaffDefault)).Methods(http.MethodPost)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func handleScore(logger contracts.Logger, grandStaffDefault bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)
		fail := func(status int, err error) {
			logger.Warn("score rejected",
				logger.Field().String("requestId", requestID),
				logger.Field().Int("status", status),
				logger.Field().Error("error", err))
			writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestID})
		}

		grand := grandStaffDefault
		if v := r.URL.Query().Get("grandStaff"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				fail(http.StatusBadRequest, errors.New("grandStaff must be a boolean"))
				return
			}
			grand = parsed
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScoreBytes))
		if err != nil {
			fail(http.StatusRequestEntityTooLarge, err)
			return
		}

		score, err := musicxml.ParseData(body,
			contracts.WithParseLogger(logger),
			contracts.WithGrandStaff(grand))
		switch {
		case errors.Is(err, contracts.ErrNilDocument):
			fail(http.StatusBadRequest, err)
			return
		case err != nil:
			fail(http.StatusUnprocessableEntity, err)
			return
		}

		writeJSON(w, http.StatusOK, summary.FromScore(score))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
