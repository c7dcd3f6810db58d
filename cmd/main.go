package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/config"
	"github.com/hxann/eduscore/database"
	adminctrl "github.com/hxann/eduscore/internal/controller/admin"
	userctrl "github.com/hxann/eduscore/internal/controller/user"
	"github.com/hxann/eduscore/internal/logger"
	"github.com/hxann/eduscore/internal/middleware"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/policy"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/hxann/eduscore/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title EduScore API
// @version 1.0
// @description Student activity management and discipline scoring. Identity is asserted by the gateway via the X-User-ID header.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewTxManager,
			repository.NewUserRepository,
			repository.NewDepartmentRepository,
			repository.NewActivityRepository,
			repository.NewRegistrationRepository,
			repository.NewParticipationRepository,
			repository.NewEvaluationRepository,
			repository.NewDisciplinePointRepository,
			repository.NewNewsFeedRepository,
			repository.NewMessageRepository,
			repository.NewReportRepository,
		),

		// Policy
		fx.Provide(policy.NewAuthorizer),

		// Services
		fx.Provide(
			service.NewScoringService,
			service.NewImportService,
			service.NewEvaluationService,
			service.NewActivityService,
			service.NewRegistrationService,
			service.NewParticipationService,
			service.NewUserService,
			service.NewStatsService,
			service.NewNewsFeedService,
			service.NewMessageService,
			service.NewReportService,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewEvaluationController,
			adminctrl.NewScoreController,
			adminctrl.NewManagementController,
			userctrl.NewActivityController,
			userctrl.NewAccountController,
			userctrl.NewFeedController,
			userctrl.NewMessageController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API surface and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	userRepo repository.UserRepository,
	evaluationCtrl *adminctrl.EvaluationController,
	scoreCtrl *adminctrl.ScoreController,
	managementCtrl *adminctrl.ManagementController,
	activityCtrl *userctrl.ActivityController,
	accountCtrl *userctrl.AccountController,
	feedCtrl *userctrl.FeedController,
	messageCtrl *userctrl.MessageController,
) {
	identity := middleware.Identity(userRepo)
	staffOnly := middleware.RequireRoles(model.RoleAdmin, model.RoleStaff)

	// Admin surface: staff and admins only.
	admin := router.Group("/api/v1/admin", identity, staffOnly)
	{
		admin.GET("/groups", evaluationCtrl.GetAllGroups)
		admin.POST("/groups", evaluationCtrl.CreateGroup)
		admin.PUT("/groups/:group_id", evaluationCtrl.UpdateGroup)
		admin.GET("/criteria", evaluationCtrl.GetAllCriteria)
		admin.POST("/criteria", evaluationCtrl.CreateCriteria)
		admin.DELETE("/criteria/:criteria_id", evaluationCtrl.DeleteCriteria)

		admin.POST("/scores", scoreCtrl.RecordScore)
		admin.POST("/scores/import", scoreCtrl.ImportScores)
		admin.POST("/scores/recompute/:student_id", scoreCtrl.RecomputeStudent)
		admin.GET("/stats", scoreCtrl.GetScoreStats)
		admin.GET("/points", managementCtrl.ListPoints)

		admin.POST("/students", managementCtrl.CreateStudent)
		admin.GET("/students", managementCtrl.ListStudents)
		admin.POST("/staff", managementCtrl.CreateStaff)
		admin.POST("/participations", managementCtrl.CreateParticipation)
		admin.PUT("/participations/:participation_id/complete", managementCtrl.MarkParticipationComplete)
		admin.GET("/activities/:activity_id/registrations", managementCtrl.GetRegistrationsByActivity)

		admin.GET("/reports", managementCtrl.GetReports)
		admin.PUT("/reports/:report_id/approve", managementCtrl.ApproveReport)
		admin.PUT("/reports/:report_id/reject", managementCtrl.RejectReport)
	}

	// User surface: any authenticated caller.
	api := router.Group("/api/v1", identity, middleware.RequireAuth())
	{
		api.GET("/activities", activityCtrl.GetActivities)
		api.GET("/activities/:activity_id", activityCtrl.GetActivity)
		api.GET("/activities/:activity_id/participations", activityCtrl.GetActivityParticipations)
		api.POST("/activities", staffOnly, activityCtrl.CreateActivity)
		api.DELETE("/activities/:activity_id", staffOnly, activityCtrl.DeleteActivity)
		api.GET("/categories", activityCtrl.GetCategories)
		api.GET("/departments", activityCtrl.GetDepartments)
		api.GET("/departments/:department_id/staff", activityCtrl.GetStaffByDepartment)
		api.GET("/classes", activityCtrl.GetClasses)

		api.GET("/me", accountCtrl.GetMe)
		api.PUT("/me/password", accountCtrl.ChangePassword)
		api.GET("/me/registrations", accountCtrl.GetMyRegistrations)
		api.POST("/me/registrations", accountCtrl.Register)
		api.GET("/me/participations", accountCtrl.GetMyParticipations)
		api.GET("/me/points", accountCtrl.GetMyPoints)
		api.GET("/me/reports", accountCtrl.GetMyReports)
		api.POST("/me/reports", accountCtrl.CreateReport)

		api.GET("/newsfeed", feedCtrl.GetFeed)
		api.POST("/newsfeed", staffOnly, feedCtrl.CreatePost)
		api.POST("/newsfeed/:newsfeed_id/likes", feedCtrl.ToggleLike)
		api.GET("/newsfeed/:newsfeed_id/likes", feedCtrl.GetLikeUsers)
		api.GET("/newsfeed/:newsfeed_id/likes/count", feedCtrl.CountLikes)
		api.POST("/newsfeed/:newsfeed_id/comments", feedCtrl.AddComment)
		api.GET("/newsfeed/:newsfeed_id/comments", feedCtrl.GetComments)
		api.GET("/newsfeed/:newsfeed_id/comments/count", feedCtrl.CountComments)
		api.DELETE("/comments/:comment_id", feedCtrl.DeleteComment)

		api.POST("/messages", messageCtrl.SendMessage)
		api.GET("/messages/conversations/:peer_id", messageCtrl.GetConversation)
		api.GET("/messages/partners/students", staffOnly, messageCtrl.GetStudentPartners)
		api.GET("/messages/:message_id", messageCtrl.GetMessage)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("EduScore API server starting on port %s", cfg.Server.Port)
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
		&model.Department{},
		&model.Class{},
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Activity{},
		&model.Registration{},
		&model.Participation{},
		&model.EvaluationGroup{},
		&model.EvaluationCriteria{},
		&model.DisciplinePoint{},
		&model.NewsFeed{},
		&model.Like{},
		&model.Comment{},
		&model.Message{},
		&model.Report{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
