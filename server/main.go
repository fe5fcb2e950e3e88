package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/teamcbatch1/conceptclarity/server/config"
	"github.com/teamcbatch1/conceptclarity/server/controllers"
	"github.com/teamcbatch1/conceptclarity/server/middlewares"
	"github.com/teamcbatch1/conceptclarity/server/routes"
	"github.com/teamcbatch1/conceptclarity/server/services/email"
	"github.com/teamcbatch1/conceptclarity/server/services/llm"
	"github.com/teamcbatch1/conceptclarity/server/services/responder"
	"github.com/teamcbatch1/conceptclarity/server/services/sentiment"
	"github.com/teamcbatch1/conceptclarity/server/services/wikipedia"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/storage"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	chatDAO := dao.NewChatDAO(db.DB)
	messageDAO := dao.NewMessageDAO(db.DB)
	feedbackDAO := dao.NewFeedbackDAO(db.DB)
	ticketDAO := dao.NewTicketDAO(db.DB)
	notificationDAO := dao.NewNotificationDAO(db.DB)
	resetDAO := dao.NewPasswordResetDAO(db.DB)

	llmClient := llm.NewClient(cfg.GroqAPIKey)
	wiki := wikipedia.NewService()
	analyzer := sentiment.NewAnalyzer(cfg.HuggingFaceAPIKey, llmClient)
	replier := responder.NewResponder(llmClient, wiki)
	mailer := email.NewMailer(cfg.EmailAPIKey, cfg.EmailFrom, cfg.ClientURL)

	// Avatar storage is optional; without an endpoint, profile images are
	// limited to externally hosted URLs.
	var avatars *storage.AvatarStore
	if cfg.MinIOEndpoint != "" {
		avatars, err = storage.NewAvatarStore(cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio connection error", zap.Error(err))
			os.Exit(1)
		}
	}

	authCtrl := controllers.NewAuthController(userDAO, resetDAO, mailer, cfg)
	userCtrl := controllers.NewUserController(userDAO, avatars)
	chatCtrl := controllers.NewChatController(chatDAO, messageDAO, replier, llmClient, analyzer, cfg.AnalyzeChatSentiment)
	feedbackCtrl := controllers.NewFeedbackController(feedbackDAO, chatDAO, userDAO, notificationDAO, analyzer)
	ticketCtrl := controllers.NewTicketController(ticketDAO, userDAO, notificationDAO)
	notificationCtrl := controllers.NewNotificationController(notificationDAO)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/health", routes.HealthRoutes(healthCtrl))
		api.Mount("/auth", routes.AuthRoutes(authCtrl, cfg))
		api.Mount("/users", routes.UserRoutes(userCtrl, cfg))
		api.Mount("/chat", routes.ChatRoutes(chatCtrl, cfg))
		api.Mount("/feedbacks", routes.FeedbackRoutes(feedbackCtrl, cfg))
		api.Mount("/tickets", routes.TicketRoutes(ticketCtrl, cfg))
		api.Mount("/notifications", routes.NotificationRoutes(notificationCtrl, cfg))
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
