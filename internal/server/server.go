package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/billfold/billfold/internal/client/domain"
	companydomain "github.com/billfold/billfold/internal/company/domain"
	"github.com/billfold/billfold/internal/config"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	obscontext "github.com/billfold/billfold/internal/observability/context"
	obslogger "github.com/billfold/billfold/internal/observability/logger"
	"github.com/billfold/billfold/internal/observability/metrics"
	"github.com/billfold/billfold/internal/observability/tracing"
	"github.com/billfold/billfold/internal/ownercontext"
	suggestiondomain "github.com/billfold/billfold/internal/suggestion/domain"
)

type ServerParam struct {
	fx.In

	Cfg           config.Config
	Log           *zap.Logger
	DB            *gorm.DB
	InvoiceSvc    invoicedomain.Service
	ClientSvc     clientdomain.Service
	CompanySvc    companydomain.Service
	SuggestionSvc suggestiondomain.Service
	HTTPMetrics   *metrics.HTTPMetrics `optional:"true"`
}

type Server struct {
	cfg           config.Config
	log           *zap.Logger
	db            *gorm.DB
	invoiceSvc    invoicedomain.Service
	clientSvc     clientdomain.Service
	companySvc    companydomain.Service
	suggestionSvc suggestiondomain.Service
	httpMetrics   *metrics.HTTPMetrics
	exportLimiter *rateLimiter
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:           p.Cfg,
		log:           p.Log.Named("server"),
		db:            p.DB,
		invoiceSvc:    p.InvoiceSvc,
		clientSvc:     p.ClientSvc,
		companySvc:    p.CompanySvc,
		suggestionSvc: p.SuggestionSvc,
		httpMetrics:   p.HTTPMetrics,
		exportLimiter: newRateLimiter(10, time.Minute),
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(s *Server) *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(tracing.GinMiddleware())
	engine.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(s.httpMetrics))

	s.RegisterRoutes(engine)
	return engine
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/v1", s.ownerAuth())
	{
		v1.POST("/invoices", s.CreateInvoice)
		v1.GET("/invoices", s.ListInvoices)
		v1.GET("/invoices/:id", s.GetInvoiceByID)
		v1.PATCH("/invoices/:id", s.UpdateInvoice)
		v1.DELETE("/invoices/:id", s.DeleteInvoice)
		v1.GET("/invoices/:id/preview", s.PreviewInvoice)
		v1.POST("/invoices/:id/export", s.ExportInvoice)

		v1.POST("/clients", s.CreateClient)
		v1.GET("/clients", s.ListClients)
		v1.GET("/clients/:id", s.GetClientByID)
		v1.PATCH("/clients/:id", s.UpdateClient)
		v1.DELETE("/clients/:id", s.DeleteClient)

		v1.GET("/profile", s.GetProfile)
		v1.PUT("/profile", s.UpsertProfile)

		v1.GET("/suggestions/items", s.SuggestItemNames)
		v1.GET("/suggestions/items/cost", s.SuggestUnitCost)
	}
}

// @Summary      Health Check
// @Description  Liveness probe
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ownerAuth resolves the caller's owner ID and threads it through the
// request context. Requests without one are rejected before reaching a
// handler.
func (s *Server) ownerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Owner-Id"))
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID == 0 {
			AbortWithError(c, newValidationError("X-Owner-Id", "missing_owner", "owner header is required"))
			return
		}

		ctx := ownercontext.WithOwnerID(c.Request.Context(), ownerID)
		ctx = obscontext.WithOwnerID(ctx, raw)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RunHTTP binds the engine to the configured address under the fx
// lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(
		NewServer,
		NewEngine,
	),
	fx.Invoke(RunHTTP),
)
