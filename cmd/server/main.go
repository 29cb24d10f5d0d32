package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/config"
	"github.com/Idyll-Intelligent-Systems/UNIUN/db"
	"github.com/Idyll-Intelligent-Systems/UNIUN/events"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/jwt"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
	"github.com/Idyll-Intelligent-Systems/UNIUN/router"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
	"github.com/Idyll-Intelligent-Systems/UNIUN/ws"
)

// repos bundles one backend's worth of repository implementations.
type repos struct {
	users        repository.UserRepository
	posts        repository.PostRepository
	interactions repository.InteractionRepository
	follows      repository.FollowRepository
	carts        repository.CartRepository
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logrus.New()
	if cfg.Production() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	r, memStore, dbConn := buildRepos(cfg, log)
	if dbConn != nil {
		defer dbConn.Close()
	}

	pub, err := events.Connect(cfg.NATSURL, log)
	if err != nil {
		log.WithError(err).Warn("nats unavailable, events disabled")
		pub = nil
	}
	defer pub.Close()

	jwtManager := jwt.NewManager(cfg.JWTSecret)

	authSvc := service.NewAuthService(r.users, jwtManager, cfg.TokenExpiry)
	postSvc := service.NewPostService(r.posts, pub)
	interSvc := service.NewInteractionService(r.interactions, r.posts, pub)
	userSvc := service.NewUserService(r.users, r.follows, pub)
	msgSvc := service.NewMessageService(pub)
	cartSvc := service.NewCartService(r.carts)
	searchSvc := service.NewSearchService(r.users, r.posts)

	hub := ws.NewHub(cfg.BotReplyDelay, log)

	engine := router.New(router.Deps{
		Cfg:          cfg,
		Log:          log,
		JWT:          jwtManager,
		Auth:         authSvc,
		Posts:        postSvc,
		Interactions: interSvc,
		Users:        userSvc,
		Messages:     msgSvc,
		Carts:        cartSvc,
		Search:       searchSvc,
		Hub:          hub,
		MemStore:     memStore,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server failed")
	}
	log.Info("server stopped")
}

// buildRepos selects the storage backend. Postgres is the default; when
// it cannot be reached the server runs on the memory store so local dev
// works without infrastructure. STORE=memory skips Postgres entirely.
func buildRepos(cfg *config.Config, log *logrus.Logger) (repos, *repository.MemoryStore, *db.Connection) {
	if cfg.Store == config.StorePostgres {
		conn, err := db.NewConnection(cfg.Database)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := db.Bootstrap(ctx, conn.DB); err != nil {
				log.WithError(err).Fatal("failed to bootstrap schema")
			}

			var rdb *redis.Client
			if cfg.RedisAddr != "" {
				rdb = redis.NewClient(&redis.Options{
					Addr:     cfg.RedisAddr,
					Password: cfg.RedisPassword,
				})
			}

			log.Info("using postgres store")
			return repos{
				users:        repository.NewUserRepository(conn.DB),
				posts:        repository.NewPostRepository(conn.DB, rdb),
				interactions: repository.NewInteractionRepository(conn.DB),
				follows:      repository.NewFollowRepository(conn.DB),
				carts:        repository.NewCartRepository(conn.DB),
			}, nil, conn
		}
		log.WithError(err).Warn("postgres unavailable, falling back to memory store")
	}

	store := repository.NewMemoryStore()
	log.Info("using memory store")
	return repos{
		users:        repository.NewMemoryUserRepository(store),
		posts:        repository.NewMemoryPostRepository(store),
		interactions: repository.NewMemoryInteractionRepository(store),
		follows:      repository.NewMemoryFollowRepository(store),
		carts:        repository.NewMemoryCartRepository(store),
	}, store, nil
}
