package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artship-backend/config"
	_ "artship-backend/docs"
	"artship-backend/internal/handler"
	"artship-backend/internal/repository"
	"artship-backend/internal/security"
	"artship-backend/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultSweepInterval = time.Hour

// @title Artship
// @version 1.0
// @description REST API социальной сети для художников

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	artRepo := repository.NewArtRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.ArtCache)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	refreshTokenService, err := service.NewRefreshTokenService(refreshTokenRepo, &cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка создания сервиса refresh токенов: %v", err)
	}
	authService := service.NewAuthenticationService(userRepo, refreshTokenService, jwtService)
	userService := service.NewUserService(userRepo)
	artService := service.NewArtService(artRepo, cacheRepo)
	likeService := service.NewLikeService(likeRepo, artService)
	commentService := service.NewCommentService(commentRepo, artService)
	followService := service.NewFollowService(followRepo, userRepo)
	collectionService := service.NewCollectionService(collectionRepo, artService)
	tagService := service.NewTagService(tagRepo, artService)

	authHandler := handler.NewAuthenticationHandler(authService, refreshTokenService)
	userHandler := handler.NewUserHandler(userService, followService)
	artHandler := handler.NewArtHandler(artService, likeService, commentService, tagService)
	socialHandler := handler.NewSocialHandler(likeService, commentService, followService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	tagHandler := handler.NewTagHandler(tagService)
	fileHandler := handler.NewFileHandler(s3Service)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService)
	setupUserRoutes(router, userHandler, socialHandler, collectionHandler, artHandler, jwtService)
	setupArtRoutes(router, artHandler, socialHandler, tagHandler, jwtService)
	setupCollectionRoutes(router, collectionHandler, jwtService)
	setupFileRoutes(router, fileHandler, jwtService)

	refreshTokenService.StartSweeper(ctx, sweepInterval(cfg))

	runServer(ctx, srv)
}

func sweepInterval(cfg *config.AppConfig) time.Duration {
	if cfg.Sweep.Interval == "" {
		return defaultSweepInterval
	}
	interval, err := time.ParseDuration(cfg.Sweep.Interval)
	if err != nil {
		log.Printf("некорректный sweep.interval %q, используется %v", cfg.Sweep.Interval, defaultSweepInterval)
		return defaultSweepInterval
	}
	return interval
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Post("/logout-all", h.LogoutAll)
			r.Put("/password", h.ChangePassword)
			r.Get("/sessions", h.Sessions)
		})
	})
}

func setupUserRoutes(
	r chi.Router,
	h *handler.UserHandler,
	social *handler.SocialHandler,
	collections *handler.CollectionHandler,
	arts *handler.ArtHandler,
	jwtService *security.JWTService,
) {
	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.OptionalJWTMiddleware(jwtService))
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetProfile)
			r.Get("/by-username/{username}", h.GetProfileByUsername)
			r.Get("/{id}/arts", arts.ListByAuthor)
			r.Get("/{id}/followers", social.Followers)
			r.Get("/{id}/following", social.Following)
			r.Get("/{id}/likes", social.UserLikes)
			r.Get("/{id}/comments", social.UserComments)
			r.Get("/{id}/collections", collections.ListUserCollections)
		})

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Put("/me", h.UpdateProfile)
			r.Post("/{id}/follow", social.Follow)
			r.Delete("/{id}/follow", social.Unfollow)
		})
	})
}

func setupArtRoutes(
	r chi.Router,
	h *handler.ArtHandler,
	social *handler.SocialHandler,
	tags *handler.TagHandler,
	jwtService *security.JWTService,
) {
	r.Route("/api/arts", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.OptionalJWTMiddleware(jwtService))
			r.Get("/", h.ListPublic)
			r.Get("/search", h.Search)
			r.Get("/{id}", h.GetArt)
			r.Get("/{id}/comments", social.ListComments)
			r.Get("/{id}/likes", social.ListLikes)
			r.Get("/{id}/tags", tags.ListForArt)
		})

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Post("/", h.CreateArt)
			r.Put("/{id}", h.UpdateArt)
			r.Delete("/{id}", h.DeleteArt)
			r.Post("/{id}/like", social.Like)
			r.Delete("/{id}/like", social.Unlike)
			r.Post("/{id}/comments", social.AddComment)
			r.Post("/{id}/tags", tags.TagArt)
			r.Delete("/{id}/tags/{name}", tags.UntagArt)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Get("/api/feed", h.Feed)
		r.Put("/api/comments/{id}", social.EditComment)
		r.Delete("/api/comments/{id}", social.DeleteComment)
	})

	r.Get("/api/comments/{id}/replies", social.ListCommentReplies)

	r.Route("/api/tags", func(r chi.Router) {
		r.Get("/", tags.ListAll)
		r.Get("/search", tags.Search)
		r.Get("/popular", tags.Popular)
		r.With(security.OptionalJWTMiddleware(jwtService)).Get("/{name}/arts", h.ListByTag)
	})
}

func setupCollectionRoutes(r chi.Router, h *handler.CollectionHandler, jwtService *security.JWTService) {
	r.Route("/api/collections", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.OptionalJWTMiddleware(jwtService))
			r.Get("/", h.ListPublicCollections)
			r.Get("/search", h.Search)
			r.Get("/{id}", h.GetCollection)
			r.Get("/{id}/arts", h.ListArts)
		})

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Post("/", h.CreateCollection)
			r.Put("/{id}", h.UpdateCollection)
			r.Delete("/{id}", h.DeleteCollection)
			r.Post("/{id}/arts", h.SaveArt)
			r.Delete("/{id}/arts/{artID}", h.RemoveArt)
		})
	})
}

func setupFileRoutes(r chi.Router, h *handler.FileHandler, jwtService *security.JWTService) {
	r.Route("/api/files", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Post("/images", h.UploadImage)
		r.Post("/projects/upload-url", h.ProjectUploadURL)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
