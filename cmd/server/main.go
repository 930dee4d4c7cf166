package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fosel/chirp/internal/config"
	"github.com/fosel/chirp/internal/database"
	postgresrepo "github.com/fosel/chirp/internal/repository/postgres"
	"github.com/fosel/chirp/internal/service"
	"github.com/fosel/chirp/internal/storage"
	"github.com/fosel/chirp/internal/transport/http/handlers"
	"github.com/fosel/chirp/internal/transport/http/middleware"
	"github.com/fosel/chirp/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		logger.Fatal("migrating database", zap.Error(err))
	}
	logger.Info("connected to database")

	// Store
	store := postgresrepo.NewStore(pool)
	repos := store.Repos()

	// Upload storage strategy, selected once at startup
	uploads, err := storage.NewDisk(cfg.UploadDir, cfg.ServerURL)
	if err != nil {
		logger.Fatal("preparing upload storage", zap.Error(err))
	}

	// WebSocket hub
	hub := ws.NewHub(logger)
	go hub.Run()
	notifier := ws.NewHubNotifier(hub, repos.Follows, logger)

	// Services
	projector := service.NewProjector(repos)
	authService := service.NewAuthService(repos, projector, cfg.JWTSecret)
	postService := service.NewPostService(repos, store, projector, notifier)
	retweetService := service.NewRetweetService(repos, projector, notifier)
	followService := service.NewFollowService(repos, notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	postHandler := handlers.NewPostHandler(postService, retweetService, logger)
	followHandler := handlers.NewFollowHandler(followService, logger)
	uploadHandler := handlers.NewUploadHandler(uploads, logger)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/post/{id}", postHandler.Get)
	mux.Handle("GET /api/v1/user", optionalAuth(http.HandlerFunc(authHandler.Me)))

	// Protected - Posts
	mux.Handle("POST /api/v1/post", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("PATCH /api/v1/post/{id}", auth(http.HandlerFunc(postHandler.Edit)))
	mux.Handle("DELETE /api/v1/post/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("POST /api/v1/post/{id}/comment", auth(http.HandlerFunc(postHandler.AddComment)))
	mux.Handle("PATCH /api/v1/post/{id}/like", auth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("DELETE /api/v1/post/{id}/like", auth(http.HandlerFunc(postHandler.Unlike)))
	mux.Handle("POST /api/v1/post/{id}/retweet", auth(http.HandlerFunc(postHandler.Retweet)))
	mux.Handle("POST /api/v1/post/images", auth(http.HandlerFunc(uploadHandler.Upload)))

	// Protected - Users
	mux.Handle("PATCH /api/v1/user/nickname", auth(http.HandlerFunc(authHandler.UpdateNickname)))
	mux.Handle("GET /api/v1/user/followers", auth(http.HandlerFunc(followHandler.ListFollowers)))
	mux.Handle("GET /api/v1/user/followings", auth(http.HandlerFunc(followHandler.ListFollowings)))
	mux.Handle("PATCH /api/v1/user/{email}/follow", auth(http.HandlerFunc(followHandler.Follow)))
	mux.Handle("DELETE /api/v1/user/{email}/follow", auth(http.HandlerFunc(followHandler.Unfollow)))
	mux.Handle("DELETE /api/v1/user/follower/{email}", auth(http.HandlerFunc(followHandler.RemoveFollower)))
	mux.HandleFunc("GET /api/v1/user/{email}", authHandler.Profile)

	// Uploaded images + WebSocket feed
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.UploadDir))))
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret, logger))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
