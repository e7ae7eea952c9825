package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/aggregate"
	"github.com/bps-nganjuk/tagmap/internal/fetcher"
	"github.com/bps-nganjuk/tagmap/internal/registry"
	"github.com/bps-nganjuk/tagmap/internal/render"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
	"github.com/bps-nganjuk/tagmap/internal/viewport"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve aggregates and map frames over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng := newEngine(cfg)

		// Boundary resolution happens in the background; the chain ends
		// in the bbox fallback so the engine always ends up with a layer.
		go func() {
			col, source, err := boundaryChain(cfg).Resolve(ctx)
			if err != nil {
				zap.L().Warn("boundary resolution failed", zap.Error(err))
				eng.OnBoundaryUnavailable()
				return
			}
			zap.L().Info("boundary resolved", zap.String("source", source))
			eng.OnBoundaryAvailable(col)
		}()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/aggregates", func(w http.ResponseWriter, req *http.Request) {
			order := aggregate.Order(req.URL.Query().Get("order"))
			if order == "" {
				order = aggregate.Descending
			}
			eng.SetFilter(req.URL.Query().Get("filter"))
			writeJSON(w, http.StatusOK, map[string]any{
				"summary":    eng.Summary(),
				"ranked":     eng.Ranked(order),
				"total_rows": eng.Result().TotalRows,
			})
		})

		r.Get("/classification", func(w http.ResponseWriter, req *http.Request) {
			col := eng.Boundary()
			counts := eng.Classification()
			type entry struct {
				Name  string `json:"name"`
				Count int    `json:"count"`
			}
			var out []entry
			if col != nil {
				for i, f := range col.Features {
					n := 0
					if i < len(counts) {
						n = counts[i]
					}
					out = append(out, entry{Name: f.Name, Count: n})
				}
			}
			writeJSON(w, http.StatusOK, out)
		})

		r.Get("/map.png", func(w http.ResponseWriter, req *http.Request) {
			img := eng.RenderFrameAt(viewportFromQuery(req), render.Options{
				ShowLabels: req.URL.Query().Get("labels") != "off",
				ShowLegend: req.URL.Query().Get("legend") != "off",
			})
			w.Header().Set("Content-Type", "image/png")
			if err := png.Encode(w, img); err != nil {
				zap.L().Error("png encode failed", zap.Error(err))
			}
		})

		r.Post("/rows", func(w http.ResponseWriter, req *http.Request) {
			rows, err := loadUpload(req)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			eng.SetRows(rows)
			writeJSON(w, http.StatusOK, map[string]any{
				"rows":    len(rows),
				"summary": eng.Summary(),
			})
		})

		r.Post("/registry", func(w http.ResponseWriter, req *http.Request) {
			rows, err := loadUpload(req)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			reg := registry.Load(rows)
			eng.SetRegistry(reg)
			writeJSON(w, http.StatusOK, map[string]any{"registry": reg.Len()})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// viewportFromQuery builds a per-request viewport state so concurrent
// map requests never touch the engine's shared viewport. The zoom value is
// honored exactly, clamped to the valid range.
func viewportFromQuery(req *http.Request) viewport.State {
	state := viewport.State{Zoom: 1}
	q := req.URL.Query()
	if z, err := strconv.ParseFloat(q.Get("zoom"), 64); err == nil {
		state.Zoom = viewport.ClampZoom(z)
	}
	if px, err := strconv.ParseFloat(q.Get("pan_x"), 64); err == nil {
		state.PanX = px
	}
	if py, err := strconv.ParseFloat(q.Get("pan_y"), 64); err == nil {
		state.PanY = py
	}
	return state
}

// loadUpload saves the uploaded "file" form part to a temp file and loads
// it through the table reader, so xlsx and csv both work.
func loadUpload(req *http.Request) ([]rowset.Row, error) {
	file, header, err := req.FormFile("file")
	if err != nil {
		return nil, eris.Wrap(err, "missing file upload")
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "tagmap-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, eris.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, eris.Wrap(err, "spool upload")
	}
	return fetcher.LoadTable(tmp.Name(), fetcher.TableOptions{})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
