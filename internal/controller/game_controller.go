package controller

import (
	"github.com/benbeisheim/martianchess-backend/internal/service"
	"github.com/benbeisheim/martianchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameController{gameService: gameService, logger: logger}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID := gc.gameService.CreateGame()

	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

// MakeMove accepts {"move":"A3B4"}. "clk" in the body starts the clock too.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	var body ws.MovePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := gc.gameService.HandleMove(gameID, body.Move)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) StartClock(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	result, err := gc.gameService.StartClock(gameID)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(result)
}

// fail maps a service error onto a status code.
func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		gc.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"error": "internal error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func StatusFor(err error) int {
	switch service.Classify(err) {
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindBadInput:
		return fiber.StatusBadRequest
	case service.KindRuleViolation:
		return fiber.StatusUnprocessableEntity
	case service.KindGameOver:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
