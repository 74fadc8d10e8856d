package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledgerengine/internal/pkg/logging"
)

// Server exposes a Recorder's registry over HTTP, plus a liveness probe.
// It is optional: a run with no LEDGER_METRICS_ADDR never constructs one.
type Server struct {
	addr string
	http *http.Server
}

// NewServer builds a metrics server bound to addr. It does not start
// listening until Start is called.
func NewServer(addr string, rec *Recorder) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rec.Registry(), promhttp.HandlerOpts{})))

	return &Server{
		addr: addr,
		http: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving in a background goroutine and returns immediately.
// The server is stopped by cancelling ctx; Start itself never blocks.
func (s *Server) Start(ctx context.Context) {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("metrics server failed", err, map[string]interface{}{
				"addr": s.addr,
			})
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			logging.Error("metrics server shutdown failed", err, nil)
		}
	}()

	logging.Info("metrics server listening", map[string]interface{}{
		"addr": s.addr,
	})
}
