package service

import (
	"errors"

	"github.com/benbeisheim/martianchess-backend/internal/model"
	"go.uber.org/zap"
)

type GameService struct {
	gameManager *GameManager
	logger      *zap.Logger
}

// MoveResult is what a caller gets back for an accepted move.
type MoveResult struct {
	Outcome model.Outcome   `json:"outcome"`
	State   model.StateView `json:"state"`
}

func NewGameService(gameManager *GameManager, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		gameManager: gameManager,
		logger:      logger,
	}
}

func (gs *GameService) CreateGame() string {
	return gs.gameManager.CreateGame().ID
}

func (gs *GameService) GetGame(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) HasGame(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (model.StateView, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove parses notation and submits it to the game.
func (gs *GameService) HandleMove(gameID string, notation string) (MoveResult, error) {
	move, err := model.ParseMove(notation)
	if err != nil {
		gs.logger.Debug("unparsable move", zap.String("game_id", gameID), zap.String("input", notation))
		return MoveResult{}, err
	}

	out, state, err := gs.gameManager.MakeMove(gameID, move)
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Outcome: out, State: state}, nil
}

// StartClock submits the clock-start pseudo-move.
func (gs *GameService) StartClock(gameID string) (MoveResult, error) {
	out, state, err := gs.gameManager.MakeMove(gameID, model.ClockMove())
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Outcome: out, State: state}, nil
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn model.Observer) error {
	gs.logger.Debug("registering connection", zap.String("game_id", gameID), zap.String("client_id", clientID))
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn model.Observer) {
	gs.logger.Debug("unregistering connection", zap.String("game_id", gameID), zap.String("client_id", clientID))
	gs.gameManager.UnregisterConnection(gameID, clientID, conn)
}

// ErrorKind classifies a move error for transports.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindBadInput
	KindRuleViolation
	KindGameOver
)

func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return KindNotFound
	case errors.Is(err, model.ErrUnparsable):
		return KindBadInput
	case errors.Is(err, model.ErrGameOver):
		return KindGameOver
	case model.IsRuleViolation(err):
		return KindRuleViolation
	}
	return KindInternal
}
