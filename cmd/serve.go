package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridemate/plateid/internal/model"
)

var servePort int

// processor is the pipeline surface the HTTP layer depends on.
type processor interface {
	Process(ctx context.Context, ref model.ImageReference) model.Outcome
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recognition HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Anthropic.Key == "" {
			return eris.New("serve: anthropic.key is not configured")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(newRecognizer()),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(p processor) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/recognitions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ImageBase64 string `json:"image_base64"`
			ImageURL    string `json:"image_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		var ref model.ImageReference
		switch {
		case req.ImageBase64 != "":
			data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image_base64 is not valid base64"})
				return
			}
			ref = model.ImageFromBytes(data)
		case req.ImageURL != "":
			ref = model.ImageFromSource(req.ImageURL)
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image_base64 or image_url is required"})
			return
		}

		outcome := p.Process(r.Context(), ref)
		writeJSON(w, statusForOutcome(outcome), outcome)
	})

	return r
}

// statusForOutcome maps each outcome variant to an HTTP status so callers
// can branch without parsing the body.
func statusForOutcome(o model.Outcome) int {
	switch o.Kind {
	case model.OutcomeAccepted:
		return http.StatusOK
	case model.OutcomeUnreadableImage:
		return http.StatusBadRequest
	case model.OutcomeTransportFailure:
		switch o.Transport {
		case model.TransportQuota:
			return http.StatusTooManyRequests
		case model.TransportUnauthorized:
			return http.StatusInternalServerError
		default:
			return http.StatusBadGateway
		}
	default:
		// All content rejections, including malformed service responses.
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("serve: write response", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
