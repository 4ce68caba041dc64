// service/game_manager.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/martianchess-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager keeps every live session in memory.
type GameManager struct {
	games  map[string]*model.Game
	rules  model.Rules
	logger *zap.Logger
	mu     sync.RWMutex
}

func NewGameManager(rules model.Rules, logger *zap.Logger) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:  make(map[string]*model.Game),
		rules:  rules,
		logger: logger,
	}
}

// Run prunes idle sessions every interval until ctx is done. A session is
// idle when nobody is watching it and no move was made for ttl.
func (gm *GameManager) Run(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := gm.Prune(now, ttl); n > 0 {
				gm.logger.Info("pruned idle games", zap.Int("count", n), zap.Int("remaining", gm.Count()))
			}
		}
	}
}

// Prune removes sessions idle since before now-ttl and returns how many went.
// Finished sessions only wait a quarter of ttl.
func (gm *GameManager) Prune(now time.Time, ttl time.Duration) int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	removed := 0
	for id, game := range gm.games {
		if game.Observers() > 0 {
			continue
		}
		limit := ttl
		if game.IsOver() {
			limit = ttl / 4
		}
		if now.Sub(game.LastActive()) < limit {
			continue
		}
		delete(gm.games, id)
		removed++
	}
	return removed
}

func (gm *GameManager) CreateGame() *model.Game {
	for {
		game := model.NewGame(uuid.NewString(), gm.rules, gm.logger)
		if err := gm.AddGame(game); err != nil {
			continue
		}
		gm.logger.Info("game created", zap.String("game_id", game.ID), zap.Int("clock_start", gm.rules.ClockStart))
		return game
	}
}

// AddGame registers a game built elsewhere under its own ID.
func (gm *GameManager) AddGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return ErrGameExists
	}
	gm.games[game.ID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return len(gm.games)
}

func (gm *GameManager) GetGameState(gameID string) (model.StateView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.StateView{}, err
	}

	return game.Snapshot(), nil
}

func (gm *GameManager) MakeMove(gameID string, move model.Move) (model.Outcome, model.StateView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Outcome{}, model.StateView{}, err
	}

	out, err := game.MakeMove(move)
	if err != nil {
		return model.Outcome{}, model.StateView{}, err
	}
	return out, game.Snapshot(), nil
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn model.Observer) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	game.RegisterConnection(clientID, conn)
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string, conn model.Observer) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(clientID, conn)
}
