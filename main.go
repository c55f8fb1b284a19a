package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"propositosAPI/handlers"
	"propositosAPI/internal/notification"
	"propositosAPI/internal/workers"
	"propositosAPI/middleware"
	"propositosAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	userService         *services.UserService
	pointsService       *services.PointsService
	notificationService *services.NotificationService
	achievementService  *services.AchievementService
	goalService         *services.GoalService
	challengeService    *services.ChallengeService
	socialService       *services.SocialService
	fcmService          *notification.FCMService
	weeklyResetWorker   *workers.WeeklyResetWorker
	streakRiskWorker    *workers.StreakRiskWorker
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	userService = services.NewUserService(dbPool)
	pointsService = services.NewPointsService(dbPool)
	notificationService = services.NewNotificationService(dbPool)
	achievementService = services.NewAchievementService(dbPool, pointsService, notificationService)
	goalService = services.NewGoalService(dbPool, pointsService, achievementService)
	challengeService = services.NewChallengeService(dbPool, pointsService, notificationService)
	socialService = services.NewSocialService(dbPool, notificationService)
	weeklyResetWorker = workers.NewWeeklyResetWorker(dbPool)
	streakRiskWorker = workers.NewStreakRiskWorker(dbPool, notificationService)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService, goalService)
	goalHandler := handlers.NewGoalHandler(goalService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	socialHandler := handlers.NewSocialHandler(socialService)
	leagueHandler := handlers.NewLeagueHandler(pointsService)
	achievementHandler := handlers.NewAchievementHandler(achievementService, goalService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(userService)
	adminHandler := handlers.NewAdminHandler(userService, weeklyResetWorker)

	weeklyResetWorker.Start()
	streakRiskWorker.Start()

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "propositos-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)
	protected.Use(middleware.ProfileMiddleware(userService))

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")
	protected.HandleFunc("/user/stats", userHandler.GetStats).Methods("GET")
	protected.HandleFunc("/user/preferences", userHandler.GetPreferences).Methods("GET")
	protected.HandleFunc("/user/preferences", userHandler.UpdatePreferences).Methods("PUT")

	protected.HandleFunc("/goals", goalHandler.ListGoals).Methods("GET")
	protected.HandleFunc("/goals", goalHandler.CreateGoal).Methods("POST")
	protected.HandleFunc("/goals/{id}", goalHandler.GetGoal).Methods("GET")
	protected.HandleFunc("/goals/{id}", goalHandler.UpdateGoal).Methods("PUT")
	protected.HandleFunc("/goals/{id}", goalHandler.DeleteGoal).Methods("DELETE")
	protected.HandleFunc("/check-ins", goalHandler.ListCheckIns).Methods("GET")
	protected.HandleFunc("/check-ins", goalHandler.CheckIn).Methods("POST")
	protected.HandleFunc("/tasks", goalHandler.ListTasks).Methods("GET")
	protected.HandleFunc("/tasks", goalHandler.CreateTask).Methods("POST")
	protected.HandleFunc("/tasks/{id}/toggle", goalHandler.ToggleTask).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", goalHandler.DeleteTask).Methods("DELETE")
	protected.HandleFunc("/streak", goalHandler.GetStreak).Methods("GET")

	protected.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	protected.HandleFunc("/challenges", challengeHandler.CreateChallenge).Methods("POST")
	protected.HandleFunc("/challenges/{id}", challengeHandler.GetChallenge).Methods("GET")
	protected.HandleFunc("/challenges/{id}", challengeHandler.DeleteChallenge).Methods("DELETE")
	protected.HandleFunc("/challenges/{id}/respond", challengeHandler.RespondToChallenge).Methods("PUT")
	protected.HandleFunc("/challenges/{id}/progress", challengeHandler.UpdateProgress).Methods("PUT")

	protected.HandleFunc("/friends", socialHandler.GetFriends).Methods("GET")
	protected.HandleFunc("/friends/requests", socialHandler.GetPendingRequests).Methods("GET")
	protected.HandleFunc("/friends/requests", socialHandler.SendFriendRequest).Methods("POST")
	protected.HandleFunc("/friends/requests/respond", socialHandler.RespondToFriendRequest).Methods("PUT")
	protected.HandleFunc("/friends/streaks", socialHandler.GetFriendStreaks).Methods("GET")
	protected.HandleFunc("/friends/{friendId}", socialHandler.RemoveFriend).Methods("DELETE")
	protected.HandleFunc("/users/search", socialHandler.SearchUsers).Methods("GET")

	protected.HandleFunc("/messages", socialHandler.SendMessage).Methods("POST")
	protected.HandleFunc("/messages/unread-count", socialHandler.GetUnreadMessageCount).Methods("GET")
	protected.HandleFunc("/messages/{friendId}", socialHandler.GetConversation).Methods("GET")

	protected.HandleFunc("/league/points", leagueHandler.GetMyPoints).Methods("GET")
	protected.HandleFunc("/league/leaderboard", leagueHandler.GetGlobalLeaderboard).Methods("GET")
	protected.HandleFunc("/league/leaderboard/friends", leagueHandler.GetFriendsLeaderboard).Methods("GET")

	protected.HandleFunc("/achievements", achievementHandler.ListAchievements).Methods("GET")
	protected.HandleFunc("/achievements", achievementHandler.CreateAchievement).Methods("POST")
	protected.HandleFunc("/achievements/templates", achievementHandler.GetTemplates).Methods("GET")
	protected.HandleFunc("/achievements/sync", achievementHandler.SyncAchievements).Methods("POST")
	protected.HandleFunc("/achievements/{id}", achievementHandler.DeleteAchievement).Methods("DELETE")

	protected.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	protected.HandleFunc("/notifications/unread-count", notificationHandler.GetUnreadCount).Methods("GET")
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	protected.HandleFunc("/admin/users", adminHandler.ListUsers).Methods("GET")
	protected.HandleFunc("/admin/reset-weekly-points", adminHandler.ResetWeeklyPoints).Methods("POST")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	weeklyResetWorker.Stop()
	streakRiskWorker.Stop()
	notificationService.StopDispatcher()

	log.Println("Server shutdown complete")
}
