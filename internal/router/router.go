package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/swasth/triage-api/internal/handler"
	"github.com/swasth/triage-api/internal/middleware"
	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        Handler
	requestH     Handler
	appointmentH Handler
	doctorH      Handler
	adminH       Handler
	h            *handler.Handler
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	requestH Handler,
	appointmentH Handler,
	doctorH Handler,
	adminH Handler,
	h *handler.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Metrics(m),
		middleware.Timeout(middleware.DefaultTimeoutConfig()),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		requestH:     requestH,
		appointmentH: appointmentH,
		doctorH:      doctorH,
		adminH:       adminH,
		h:            h,
	}
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.setupHealthCheck(api)

	// Public routes: login, triage submission and the email-link
	// confirm/decline flow.
	r.authH.RegisterRoutes(api)
	r.requestH.RegisterRoutes(api)
	r.appointmentH.RegisterRoutes(api)
	api.GET("/system/status", r.h.SystemStatus)

	doctorRoutes := api.Group("")
	doctorRoutes.Use(r.auth.Authenticate(), r.auth.RequireType(model.UserTypeDoctor))
	r.doctorH.RegisterRoutes(doctorRoutes)

	adminRoutes := api.Group("")
	adminRoutes.Use(r.auth.Authenticate(), r.auth.RequireType(model.UserTypeAdmin))
	r.adminH.RegisterRoutes(adminRoutes)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
