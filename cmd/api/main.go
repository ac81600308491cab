package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/swasth/triage-api/internal/config"
	"github.com/swasth/triage-api/internal/handler"
	adminHandler "github.com/swasth/triage-api/internal/handler/admin"
	appointmentHandler "github.com/swasth/triage-api/internal/handler/appointment"
	authHandler "github.com/swasth/triage-api/internal/handler/auth"
	doctorHandler "github.com/swasth/triage-api/internal/handler/doctor"
	requestHandler "github.com/swasth/triage-api/internal/handler/request"
	"github.com/swasth/triage-api/internal/middleware"
	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/notifier"
	"github.com/swasth/triage-api/internal/repository/postgres"
	"github.com/swasth/triage-api/internal/router"
	adminService "github.com/swasth/triage-api/internal/service/admin"
	authService "github.com/swasth/triage-api/internal/service/auth"
	doctorService "github.com/swasth/triage-api/internal/service/doctor"
	patientService "github.com/swasth/triage-api/internal/service/patient"
	triageService "github.com/swasth/triage-api/internal/service/triage"
	"github.com/swasth/triage-api/internal/triage"
	"github.com/swasth/triage-api/pkg/anthropic"
	"github.com/swasth/triage-api/pkg/auth"
	"github.com/swasth/triage-api/pkg/logger"
	"github.com/swasth/triage-api/pkg/metrics"
	"github.com/swasth/triage-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid redis URL")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	m := metrics.New("triage")
	model.RegisterValidations()

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	emailLogRepo := postgres.NewEmailLogRepository(db)

	// Classifier: the rule engine always works; the model-assisted
	// classifier wraps it when an API key is configured.
	ruleClassifier := triage.NewRuleClassifier()
	anthropicClient := anthropic.NewClient(anthropic.Config{
		APIKey:    cfg.Classifier.APIKey,
		Model:     cfg.Classifier.Model,
		MaxTokens: cfg.Classifier.MaxTokens,
		Timeout:   cfg.Classifier.Timeout,
	})
	var classifier triage.Classifier = ruleClassifier
	if anthropicClient.Enabled() {
		classifier = triage.NewModelClassifier(anthropicClient, ruleClassifier, m, log.With().Str("component", "classifier").Logger())
	}

	mailer := notifier.NewMailer(notifier.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, emailLogRepo, m, log.With().Str("component", "mailer").Logger())

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)

	// Services
	triageSvc := triageService.NewService(
		classifier,
		requestRepo,
		doctorRepo,
		patientRepo,
		appointmentRepo,
		adminRepo,
		mailer,
		cfg.Server.BaseURL,
		m,
		log.With().Str("component", "triage").Logger(),
	)
	authSvc := authService.NewService(
		patientRepo,
		doctorRepo,
		adminRepo,
		redisClient,
		mailer,
		jwtSvc,
		hasher,
		log.With().Str("component", "auth").Logger(),
	)
	doctorSvc := doctorService.NewService(doctorRepo, log.With().Str("component", "doctor").Logger())
	patientSvc := patientService.NewService(patientRepo, requestRepo)
	adminSvc := adminService.NewService(patientRepo, doctorRepo, requestRepo, appointmentRepo, emailLogRepo)

	// Handlers
	h := handler.NewHandler(db, redisClient, anthropicClient.Enabled)
	authH := authHandler.NewHandler(authSvc)
	requestH := requestHandler.NewHandler(triageSvc, patientSvc)
	appointmentH := appointmentHandler.NewHandler(triageSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	adminH := adminHandler.NewHandler(adminSvc, doctorSvc)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	if len(cfg.CORS.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.CORS.AllowedMethods
	}
	if len(cfg.CORS.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.CORS.AllowedHeaders
	}

	r := router.NewRouter(
		authMiddleware,
		authH,
		requestH,
		appointmentH,
		doctorH,
		adminH,
		h,
		m,
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       corsConfig,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
