package server

import (
	"context"
	"net/http"

	"gymflow/internal/auth"
	"gymflow/internal/class"
	"gymflow/internal/config"
	"gymflow/internal/enrollment"
	"gymflow/internal/member"
	"gymflow/internal/notify"
	"gymflow/internal/room"
	"gymflow/internal/trainer"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
	notifier   *notify.Service
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	memberRepo := member.NewRepository(db)
	trainerRepo := trainer.NewRepository(db)
	roomRepo := room.NewRepository(db)
	classRepo := class.NewRepository(db)
	enrollmentRepo := enrollment.NewRepository(db)

	memberHandler := member.NewHandler(member.NewService(memberRepo, cfg.JWTSecret))
	trainerHandler := trainer.NewHandler(trainer.NewService(trainerRepo))
	roomHandler := room.NewHandler(room.NewService(roomRepo))
	classHandler := class.NewHandler(class.NewService(classRepo))
	enrollmentHandler := enrollment.NewHandler(
		enrollment.NewService(enrollmentRepo, classRepo, memberRepo, notifier),
	)

	public := router.Group("/auth")
	{
		public.POST("/register", memberHandler.Register)
		public.POST("/login", memberHandler.Login)
		public.POST("/refresh", memberHandler.Refresh)
	}

	authMiddleware := auth.Middleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.GET("/me/enrollments", enrollmentHandler.ListMine)

		protected.GET("/classes", classHandler.ListClasses)
		protected.GET("/classes/upcoming", enrollmentHandler.BrowseClasses)
		protected.GET("/classes/:classID", classHandler.GetClass)
		protected.POST("/classes/:classID/enroll", enrollmentHandler.Enroll)
		protected.DELETE("/classes/:classID/enroll", enrollmentHandler.Cancel)

		protected.GET("/trainers", trainerHandler.ListTrainers)
		protected.GET("/trainers/available", classHandler.AvailableTrainers)
		protected.GET("/trainers/:trainerID/availability", trainerHandler.ListAvailability)
		protected.GET("/trainers/:trainerID/schedule", classHandler.TrainerSchedule)

		protected.GET("/rooms", roomHandler.ListRooms)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/classes", classHandler.ScheduleClass)
		admin.PATCH("/classes/:classID", classHandler.UpdateClass)
		admin.DELETE("/classes/:classID", classHandler.DeleteClass)

		admin.POST("/trainers", trainerHandler.CreateTrainer)
		admin.POST("/trainers/:trainerID/availability", trainerHandler.AddAvailability)
		admin.DELETE("/trainers/:trainerID/availability/:windowID", trainerHandler.RemoveAvailability)

		admin.POST("/rooms", roomHandler.CreateRoom)
		admin.PUT("/rooms/:roomID", roomHandler.UpdateRoom)
		admin.DELETE("/rooms/:roomID", roomHandler.DeleteRoom)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-notification", TestNotification(notifier))

	return &Server{
		router:   router,
		db:       db,
		config:   cfg,
		notifier: notifier,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
