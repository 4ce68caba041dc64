package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GameExists reports whether a game id names a live session.
type GameExists func(gameID string) bool

// WebSocketUpgrade must be mounted on the route that declares :gameId, since
// route params are empty inside app.Use. It answers 426 for plain requests and
// 404 for unknown games so that a socket is only opened for a real session.
func WebSocketUpgrade(exists GameExists) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		switch {
		case gameID == "":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game ID is required"})
		case ClientID(c) == "":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client ID is required"})
		case exists != nil && !exists(gameID):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Next()
	}
}
