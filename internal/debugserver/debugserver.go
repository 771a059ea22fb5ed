// Package debugserver exposes the match host's internal observability
// surface: health, Prometheus metrics, pprof, and the last replay file.
// It is never on the per-turn critical path — it only serves requests
// from an operator.
package debugserver

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the debug server.
type Config struct {
	Enabled    bool
	ListenAddr string // must be loopback; see Start
	ReplayPath string
}

// DefaultConfig returns the localhost-only default, matching this
// module's general refusal to expose operator surfaces externally.
func DefaultConfig() Config {
	return Config{Enabled: true, ListenAddr: "127.0.0.1:6060", ReplayPath: "replay.bin"}
}

// Start builds the router and begins serving in a background goroutine.
// It refuses to bind anywhere but loopback unless ARENA_ALLOW_DEBUG_EXTERNAL
// is set to "true", since pprof endpoints are a DoS and information-disclosure risk
// on an open interface.
func Start(cfg Config) error {
	if !cfg.Enabled {
		return nil
	}
	if !isLoopback(cfg.ListenAddr) && os.Getenv("ARENA_ALLOW_DEBUG_EXTERNAL") != "true" {
		log.Printf("debugserver: forcing loopback bind, %s is not localhost", cfg.ListenAddr)
		cfg.ListenAddr = "127.0.0.1:6060"
	}

	r := NewRouter(cfg)
	go func() {
		log.Printf("debugserver: listening on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
			log.Printf("debugserver: stopped: %v", err)
		}
	}()
	return nil
}

// NewRouter builds the handler without starting a listener, so tests can
// drive it with httptest.NewServer.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/replay/last", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, cfg.ReplayPath)
	})

	r.HandleFunc("/debug/pprof/*", pprof.Index)
	r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	r.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	r.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return r
}

func isLoopback(addr string) bool {
	return strings.HasPrefix(addr, "127.0.0.1") || strings.HasPrefix(addr, "localhost")
}
