package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"packetirc/internal/app/infrastructure/config"
	"packetirc/pkg/logger"
)

// Router serves the optional local diagnostics endpoint: metrics, pprof
// and a small status page. It binds to loopback by default and never
// carries chat traffic.
type Router struct {
	router *gin.Engine

	log     logger.Logger
	manager *config.Manager
	start   time.Time
}

func NewRouter(log logger.Logger, manager *config.Manager) *Router {
	// stdout is the chat surface on a packet switch, so gin must not log
	// requests there
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		router:  gin.New(),
		log:     log,
		manager: manager,
		start:   time.Now(),
	}
	r.router.Use(gin.Recovery())
	cfg := manager.Get()

	pprofGroup := r.router.Group("/", gin.BasicAuth(gin.Accounts{
		"admin": cfg.API.AuthToken,
	}))
	pprof.Register(pprofGroup)

	r.router.GET("/metrics", gin.BasicAuth(gin.Accounts{
		"admin": cfg.API.AuthToken,
	}), gin.WrapH(promhttp.Handler()))

	r.router.GET("/healthz", r.healthzHandler)
	r.router.GET("/status", r.statusHandler)

	return r
}

func (r *Router) Run() error {
	addr := r.manager.Get().API.ListenAddr
	r.log.Info("Diagnostics endpoint listening", "addr", addr)

	srv := r.newServer(addr, r.router)
	return srv.ListenAndServe()
}

func (r *Router) healthzHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (r *Router) statusHandler(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	c.JSON(http.StatusOK, gin.H{
		"uptime_seconds": int64(time.Since(r.start).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"alloc_bytes":    ms.Alloc,
		"go_version":     runtime.Version(),
	})
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
