package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/vitrine/internal/catalog/dispatch"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/catalog/intake"
	"github.com/smallbiznis/vitrine/internal/catalog/render"
	"github.com/smallbiznis/vitrine/internal/config"
	"github.com/smallbiznis/vitrine/internal/observability"
	obsmiddleware "github.com/smallbiznis/vitrine/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/vitrine/internal/observability/metrics"
	obstracing "github.com/smallbiznis/vitrine/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewFlash),
	fx.Invoke(NewServer),
	fx.Invoke(RunHTTP),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, gatherer prometheus.Gatherer) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics, gatherer)
}

// RunHTTP serves the panel on HTTP_ADDR.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	Serve(lc, cfg.HTTPAddr, r, log)
}

func Serve(lc fx.Lifecycle, addr string, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	catalog    domain.Service
	dispatcher *dispatch.Dispatcher
	builder    *intake.Builder
	renderer   *render.Renderer
	flash      *Flash
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	Catalog    domain.Service
	Dispatcher *dispatch.Dispatcher
	Builder    *intake.Builder
	Renderer   *render.Renderer
	Flash      *Flash
}

func NewServer(p ServerParams) *Server {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        log.Named("http.server"),
		catalog:    p.Catalog,
		dispatcher: p.Dispatcher,
		builder:    p.Builder,
		renderer:   p.Renderer,
		flash:      p.Flash,
	}

	svc.registerUIRoutes()
	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) registerUIRoutes() {
	s.engine.GET("/", s.Index)

	products := s.engine.Group("/products")
	{
		products.GET("", s.ListFragment)
		products.POST("", s.SubmitProduct)
		products.POST("/reload", s.Reload)
		products.POST("/:id/actions", s.CardAction)
	}
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.DELETE("/products/:id", s.RemoveProduct)
	api.PATCH("/products/:id/stock", s.PatchProductStock)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
