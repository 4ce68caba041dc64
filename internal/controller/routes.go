package controller

import (
	"strings"

	"github.com/benbeisheim/martianchess-backend/internal/middleware"
	"github.com/benbeisheim/martianchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type AppConfig struct {
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewApp wires middleware, REST routes and the websocket endpoint.
func NewApp(gameService *service.GameService, cfg AppConfig) *fiber.App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "martianchess",
		DisableStartupMessage: true,
	})

	// fiber refuses credentials with a wildcard origin
	origins := strings.Join(cfg.CORSOrigins, ", ")
	credentials := origins != "" && !strings.Contains(origins, "*")
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.ClientIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: credentials,
		ExposeHeaders:    middleware.ClientIDHeader,
	}))
	app.Use(middleware.RequestLogger(logger.Named("http")))

	gameController := NewGameController(gameService, logger.Named("rest"))
	wsController := NewWebSocketController(gameService, logger.Named("ws"))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId",
		middleware.EnsureClientID(),
		middleware.WebSocketUpgrade(gameService.HasGame),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         cfg.CORSOrigins,
		}),
	)

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureClientID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/clock", gameController.StartClock)

	return app
}
