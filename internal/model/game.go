package model

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/benbeisheim/martianchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Observer is the write side of a websocket connection.
type Observer interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// observer is one registered connection and the newest snapshot it has been
// sent. sent is only touched under GameConnections.sendMu.
type observer struct {
	conn Observer
	sent uint64
}

// The connections observing a specific game
type GameConnections struct {
	connections map[string]*observer // clientID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // a conn supports one concurrent writer
	sendMu      sync.Mutex // orders whole broadcasts
}

// Game is one hot-seat session: the rule state plus the sockets watching it.
type Game struct {
	ID          string
	CreatedAt   time.Time
	updatedAt   time.Time
	mu          sync.Mutex
	state       GameState
	seq         uint64 // bumped for every accepted move
	connections *GameConnections
	logger      *zap.Logger
}

// StateView is the JSON shape of a game sent to clients.
type StateView struct {
	GameID       string   `json:"gameId"`
	Board        []string `json:"board"`
	Turn         uint32   `json:"turn"`
	ToMove       int      `json:"toMove"`
	Scores       [2]int   `json:"scores"`
	LastMove     *string  `json:"lastMove"`
	Clock        int      `json:"clock"`
	ClockRunning bool     `json:"clockRunning"`
	Status       string   `json:"status"`
	Reason       *string  `json:"reason"`
	Winner       *int     `json:"winner"`
}

func NewGame(id string, rules Rules, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now()
	return &Game{
		ID:          id,
		CreatedAt:   now,
		updatedAt:   now,
		state:       NewGameState(rules),
		connections: NewGameConnections(),
		logger:      logger.With(zap.String("game_id", id)),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*observer),
	}
}

func (g *Game) Snapshot() StateView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() StateView {
	s := &g.state
	view := StateView{
		GameID:       g.ID,
		Board:        s.Board.Rows(),
		Turn:         s.Turn,
		ToMove:       s.ActivePlayer().Number(),
		Scores:       [2]int{int(s.Score[PlayerOne]), int(s.Score[PlayerTwo])},
		Clock:        int(s.Clock),
		ClockRunning: s.Clock.Running(),
		Status:       "ongoing",
	}
	if s.HasLastMove {
		last := s.LastMove.String()
		view.LastMove = &last
	}
	if reason, over := s.GameOver(); over {
		r := string(reason)
		w := s.Winner().Number()
		view.Status = "over"
		view.Reason = &r
		view.Winner = &w
	}
	return view
}

// MakeMove plays m if the game is still running and pushes the new state to
// every observer.
func (g *Game) MakeMove(m Move) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if reason, over := g.state.GameOver(); over {
		g.logger.Debug("move after game end", zap.String("move", m.String()), zap.String("reason", string(reason)))
		return Outcome{}, ErrGameOver
	}

	out, err := g.state.Play(m)
	if err != nil {
		g.logger.Info("move rejected",
			zap.String("move", m.String()),
			zap.Int("player", g.state.ActivePlayer().Number()),
			zap.Error(err),
		)
		return Outcome{}, err
	}

	g.logger.Info("move accepted",
		zap.String("move", m.String()),
		zap.String("kind", string(out.Kind)),
		zap.Int("player", out.Player.Number()),
		zap.Uint8("points", out.Points),
		zap.Int("clock", int(g.state.Clock)),
	)
	if reason, over := g.state.GameOver(); over {
		g.logger.Info("game over",
			zap.String("reason", string(reason)),
			zap.Int("winner", g.state.Winner().Number()),
		)
	}

	g.updatedAt = time.Now()
	g.seq++
	go g.broadcast(g.seq, g.snapshot())
	return out, nil
}

// LastActive is the time of the last accepted move, or creation.
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.updatedAt
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, over := g.state.GameOver()
	return over
}

func (g *Game) RegisterConnection(clientID string, conn Observer) {
	// Holding sendMu keeps a pending broadcast from landing between the
	// initial snapshot and the registration.
	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()

	g.mu.Lock()
	seq, view := g.seq, g.snapshot()
	g.mu.Unlock()

	g.connections.mu.Lock()
	old, exists := g.connections.connections[clientID]
	g.connections.connections[clientID] = &observer{conn: conn, sent: seq}
	g.connections.mu.Unlock()

	if exists && old.conn != conn {
		g.connections.writeMu.Lock()
		old.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Replaced by a new connection"),
		)
		g.connections.writeMu.Unlock()
		old.conn.Close()
	}
	g.logger.Debug("registered connection", zap.String("client_id", clientID))

	// Send initial state
	msg, err := stateMessage(view)
	if err != nil {
		g.logger.Error("failed to marshal state", zap.Error(err))
		return
	}
	if err := g.Send(conn, msg); err != nil {
		g.logger.Warn("failed to send initial state", zap.String("client_id", clientID), zap.Error(err))
	}
}

func (g *Game) UnregisterConnection(clientID string, conn Observer) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// Only unregister if this is still the current connection
	if current, exists := g.connections.connections[clientID]; exists && current.conn == conn {
		delete(g.connections.connections, clientID)
		g.logger.Debug("unregistered connection", zap.String("client_id", clientID))
	}
}

func (g *Game) Observers() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()

	return len(g.connections.connections)
}

// Send writes one message to an observer of this game.
func (g *Game) Send(conn Observer, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	return conn.WriteJSON(msg)
}

func stateMessage(view StateView) (ws.Message, error) {
	payload, err := json.Marshal(view)
	if err != nil {
		return ws.Message{}, err
	}
	return ws.Message{Type: ws.MessageTypeGameState, Payload: payload}, nil
}

// broadcast delivers snapshot seq to every observer that has not yet seen a
// newer one, so the turn an observer sees never goes back.
func (g *Game) broadcast(seq uint64, view StateView) {
	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()

	msg, err := stateMessage(view)
	if err != nil {
		g.logger.Error("failed to marshal state", zap.Error(err))
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*observer, len(g.connections.connections))
	for id, o := range g.connections.connections {
		active[id] = o
	}
	g.connections.mu.RUnlock()

	var failed []string
	for id, o := range active {
		if o.sent >= seq {
			continue
		}
		if err := g.Send(o.conn, msg); err != nil {
			g.logger.Warn("failed to send state", zap.String("client_id", id), zap.Error(err))
			failed = append(failed, id)
			continue
		}
		o.sent = seq
	}

	if len(failed) == 0 {
		return
	}
	g.connections.mu.Lock()
	for _, id := range failed {
		if g.connections.connections[id] == active[id] {
			delete(g.connections.connections, id)
		}
	}
	g.connections.mu.Unlock()
}
