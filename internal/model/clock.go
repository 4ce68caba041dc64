package model

// MoveClock counts down the moves left once a player has started it.
// -1 means idle, 0 means expired.
type MoveClock int

const (
	ClockIdle    MoveClock = -1
	ClockExpired MoveClock = 0

	DefaultClockStart = 8
)

func (c MoveClock) Idle() bool    { return c == ClockIdle }
func (c MoveClock) Running() bool { return c > 0 }
func (c MoveClock) Expired() bool { return c == ClockExpired }

// Start sets the countdown. Only an idle clock can be started.
func (c *MoveClock) Start(from int) error {
	if !c.Idle() {
		return ErrClockStarted
	}
	*c = MoveClock(from)
	return nil
}

// Renew resets a running clock after a capture.
func (c *MoveClock) Renew(from int) {
	if c.Running() {
		*c = MoveClock(from)
	}
}

func (c *MoveClock) Tick() {
	if c.Running() {
		*c--
	}
}

// Rules holds the tunable parts of the rule set.
type Rules struct {
	ClockStart int `json:"clockStart" yaml:"clock_start"`
}

func DefaultRules() Rules {
	return Rules{ClockStart: DefaultClockStart}
}

func (r Rules) clockStart() int {
	if r.ClockStart <= 0 {
		return DefaultClockStart
	}
	return r.ClockStart
}
