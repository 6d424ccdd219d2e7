package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quizlink/config"
	"quizlink/database"
	_ "quizlink/docs" // Swagger docs - auto-generated
	"quizlink/internal/guard"
	"quizlink/internal/logger"
	"quizlink/internal/middleware"
	"quizlink/internal/model"
	"quizlink/internal/repository"
	"quizlink/internal/service"
	"quizlink/internal/token"
	"quizlink/pkg/cache"

	adminctrl "quizlink/internal/controller/admin"
	userctrl "quizlink/internal/controller/user"
)

// @title QuizLink API
// @version 1.0
// @description Tokenized quiz link distribution, registration and attempt tracking API.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,
			cache.NewRedisCache,
			token.NewGenerator,
			func(rc *cache.RedisCache) guard.CounterStore { return rc },
			guard.NewMonitor,
		),

		// Repositories layer
		fx.Provide(
			repository.NewStudentRepository,
			repository.NewAdminRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewQuizLinkRepository,
			repository.NewLinkAttemptRepository,
			repository.NewAttemptRepository,
			repository.NewResponseRepository,
			repository.NewStatusRepository,
		),

		// Services layer
		fx.Provide(
			func(
				linkRepo repository.QuizLinkRepository,
				quizRepo repository.QuizRepository,
				linkAttemptRepo repository.LinkAttemptRepository,
				tokens token.Generator,
				rc *cache.RedisCache,
				cfg *config.Config,
			) service.LinkService {
				return service.NewLinkService(linkRepo, quizRepo, linkAttemptRepo, tokens, rc, cfg.BaseURL)
			},
			service.NewRegistrationService,
			service.NewAttemptService,
			service.NewDisruptionService,
			func(adminRepo repository.AdminRepository, cfg *config.Config) service.AuthService {
				return service.NewAuthService(adminRepo, cfg.Auth.JWTSecret)
			},
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewLinkController,
			userctrl.NewAttemptController,
			adminctrl.NewLinkAdminController,
			adminctrl.NewAuthController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through the global zerolog instance
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	linkCtrl *userctrl.LinkController,
	attemptCtrl *userctrl.AttemptController,
	linkAdminCtrl *adminctrl.LinkAdminController,
	authCtrl *adminctrl.AuthController,
) {
	api := router.Group("/api/v1")
	{
		links := api.Group("/quiz-links")
		links.POST("/validate", linkCtrl.ValidateLink)
		links.POST("/register", linkCtrl.RegisterForLink)
		links.POST("/check-attempt", linkCtrl.CheckAttempt)

		api.GET("/quizzes/:quiz_id", attemptCtrl.GetQuiz)

		attempts := api.Group("/attempts")
		attempts.POST("/start", attemptCtrl.StartAttempt)
		attempts.PUT("/:attempt_id/answers", attemptCtrl.SaveAnswer)
		attempts.POST("/:attempt_id/sync-time", attemptCtrl.SyncTime)
		attempts.POST("/:attempt_id/complete", attemptCtrl.CompleteAttempt)
		attempts.POST("/:attempt_id/disruptions", attemptCtrl.RecordDisruption)
		attempts.POST("/:attempt_id/disruptions/confirm", attemptCtrl.ConfirmDisruption)
	}

	admin := router.Group("/api/v1/admin")
	{
		admin.POST("/login", authCtrl.Login)

		protected := admin.Group("", middleware.AdminAuth(cfg.Auth.JWTSecret))
		protected.POST("/quizzes/:quiz_id/links", linkAdminCtrl.GenerateLink)
		protected.GET("/quizzes/:quiz_id/links", linkAdminCtrl.ListLinks)
		protected.DELETE("/links/:link_id", linkAdminCtrl.DeactivateLink)
		protected.POST("/reset-test", linkAdminCtrl.ResetAttempt)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizLink API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Student{},
		&model.Admin{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizLink{},
		&model.QuizLinkAttempt{},
		&model.Attempt{},
		&model.Response{},
		&model.StudentQuizStatus{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
