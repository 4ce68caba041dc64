package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/martianchess-backend/internal/middleware"
	"github.com/benbeisheim/martianchess-backend/internal/service"
	"github.com/benbeisheim/martianchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Extract game ID and client ID from context
	gameID := c.Params("gameId")
	clientID, _ := c.Locals(middleware.ClientIDLocal).(string)
	log := wsc.logger.With(zap.String("game_id", gameID), zap.String("client_id", clientID))

	game, err := wsc.gameService.GetGame(gameID)
	if err != nil {
		log.Info("websocket for unknown game")
		c.WriteJSON(ws.NewError(err.Error()))
		c.Close()
		return
	}

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		log.Warn("failed to register connection", zap.Error(err))
		c.Close()
		return
	}
	// Clean up when connection closes
	defer wsc.gameService.UnregisterConnection(gameID, clientID, c)

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("read ended", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug("parse error", zap.Error(err))
			game.Send(c, ws.NewError("malformed message"))
			continue
		}

		// Accepted moves reach this client through the state broadcast.
		if err := wsc.handleMessage(gameID, msg); err != nil {
			log.Debug("handle error", zap.Error(err))
			if err := game.Send(c, ws.NewError(err.Error())); err != nil {
				return
			}
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		_, err := wsc.gameService.HandleMove(gameID, move.Move)
		return err

	case ws.MessageTypeClock:
		_, err := wsc.gameService.StartClock(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
