package server

import (
	"log"
	"time"

	"github.com/JhonKenma/backend-tecsupNav/internal/auth"
	"github.com/JhonKenma/backend-tecsupNav/internal/config"
	"github.com/JhonKenma/backend-tecsupNav/internal/navigation"
	"github.com/JhonKenma/backend-tecsupNav/internal/place"
	"github.com/JhonKenma/backend-tecsupNav/internal/route"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Hub    *navigation.Hub
	Engine *navigation.Engine
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	places := place.NewRepository(db)
	customRoutes := route.NewPgStore(db)

	var provider route.Provider
	if cfg.GoogleMapsAPIKey != "" {
		gp, err := route.NewGoogleProvider(cfg.GoogleMapsAPIKey)
		if err != nil {
			log.Printf("directions provider unavailable: %v", err)
		} else {
			provider = gp
		}
	}

	resolver := route.NewResolver(places, customRoutes, provider,
		time.Duration(cfg.ProviderTimeoutS)*time.Second)

	hub := navigation.NewHub(redisClient)
	registry := navigation.NewRegistry(navigation.NewHistory(), nil)
	engine := navigation.NewEngine(registry, places, resolver, hub, nil)

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Hub:    hub,
		Engine: engine,
	}

	registerRoutes(s, places, customRoutes)
	return s
}

func registerRoutes(s *Server, places *place.Repository, customRoutes *route.PgStore) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	authService := auth.NewService(s.Cfg.JWTSecret, s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), authService)
	place.RegisterRoutes(s.App.Group("/places"), places, jwtMiddleware)
	route.RegisterRoutes(s.App.Group("/routes"), customRoutes, jwtMiddleware)
	navigation.RegisterRoutes(s.App.Group("/navigation"), s.Engine, s.Hub, authService, jwtMiddleware)
}
