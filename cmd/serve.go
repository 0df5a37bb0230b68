package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/screener"
)

// maxTop bounds the top query parameter.
const maxTop = 100

var servePort int

// screenService is the part of *screener.Screener the HTTP API uses.
type screenService interface {
	ScreenFromNews(ctx context.Context, topN int, queries ...string) []model.StockSignal
	ScreenFromSupplementary(ctx context.Context, topN int) []model.StockSignal
	ScreenCombined(ctx context.Context, topN int) []model.StockSignal
	StockCodes(ctx context.Context, topN int, queries ...string) []string
}

type screenResponse struct {
	RunID   string              `json:"run_id"`
	Mode    string              `json:"mode"`
	Count   int                 `json:"count"`
	Signals []model.StockSignal `json:"signals"`
}

type codesResponse struct {
	RunID string   `json:"run_id"`
	Codes []string `json:"codes"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the screening API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		env, err := initScreener(ctx, cfg, "serve", "")
		if err != nil {
			return err
		}
		defer env.Close()

		mux := buildMux(env.Screener, env.Registry, cfg.Screen.TopN)
		return startServer(ctx, mux, resolvePort(servePort, cfg.Server.Port))
	},
}

// buildMux wires the API routes. svc may be nil, in which case screening
// endpoints answer 503. gatherer may be nil to omit /metrics.
func buildMux(svc screenService, gatherer prometheus.Gatherer, defaultTop int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Run-ID"},
		ExposedHeaders: []string{"X-Run-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeHTTPJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/screen/{mode}", func(w http.ResponseWriter, r *http.Request) {
			mode := chi.URLParam(r, "mode")
			run, ok := screenRunner(svc, mode, r.URL.Query()["q"])
			if !ok {
				writeHTTPError(w, http.StatusNotFound, fmt.Sprintf("unknown mode %q", mode))
				return
			}
			if svc == nil {
				writeHTTPError(w, http.StatusServiceUnavailable, "screener not configured")
				return
			}
			topN, err := parseTop(r, defaultTop)
			if err != nil {
				writeHTTPError(w, http.StatusBadRequest, err.Error())
				return
			}

			ctx, runID := runContext(r)
			signals := run(ctx, topN)
			if signals == nil {
				signals = []model.StockSignal{}
			}
			w.Header().Set("X-Run-ID", runID)
			writeHTTPJSON(w, http.StatusOK, screenResponse{
				RunID:   runID,
				Mode:    mode,
				Count:   len(signals),
				Signals: signals,
			})
		})

		r.Get("/codes", func(w http.ResponseWriter, r *http.Request) {
			if svc == nil {
				writeHTTPError(w, http.StatusServiceUnavailable, "screener not configured")
				return
			}
			topN, err := parseTop(r, defaultTop)
			if err != nil {
				writeHTTPError(w, http.StatusBadRequest, err.Error())
				return
			}

			ctx, runID := runContext(r)
			codes := svc.StockCodes(ctx, topN, r.URL.Query()["q"]...)
			if codes == nil {
				codes = []string{}
			}
			w.Header().Set("X-Run-ID", runID)
			writeHTTPJSON(w, http.StatusOK, codesResponse{RunID: runID, Codes: codes})
		})
	})

	return r
}

// screenRunner resolves a mode name to the screening call serving it.
func screenRunner(svc screenService, mode string, queries []string) (func(context.Context, int) []model.StockSignal, bool) {
	switch mode {
	case screener.ModeNews:
		return func(ctx context.Context, topN int) []model.StockSignal {
			return svc.ScreenFromNews(ctx, topN, queries...)
		}, true
	case screener.ModeBoard:
		return func(ctx context.Context, topN int) []model.StockSignal {
			return svc.ScreenFromSupplementary(ctx, topN)
		}, true
	case screener.ModeCombined:
		return func(ctx context.Context, topN int) []model.StockSignal {
			return svc.ScreenCombined(ctx, topN)
		}, true
	default:
		return nil, false
	}
}

// runContext tags the request context with a run ID, taken from the
// X-Run-ID header when the caller supplies one.
func runContext(r *http.Request) (context.Context, string) {
	runID := r.Header.Get("X-Run-ID")
	if runID == "" {
		runID = uuid.NewString()
	}
	return screener.WithRunID(r.Context(), runID), runID
}

func parseTop(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("top")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxTop {
		return 0, eris.Errorf("top must be an integer between 1 and %d", maxTop)
	}
	return n, nil
}

func writeHTTPJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("write response failed", zap.Error(err))
	}
}

func writeHTTPError(w http.ResponseWriter, status int, msg string) {
	writeHTTPJSON(w, status, map[string]string{"error": msg})
}

// resolvePort prefers the flag value over the config value.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// startServer serves handler on port until ctx is cancelled, then shuts
// down gracefully.
func startServer(ctx context.Context, handler http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server listen")
	}

	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
