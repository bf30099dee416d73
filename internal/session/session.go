// Package session owns the typing session state machine.
package session

import (
	"fmt"
	"time"

	"github.com/Phantom-J-A-T/Type-speed-tester/internal/bank"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/compare"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/model"
)

// DefaultLimit is the fixed duration of one typing attempt.
const DefaultLimit = 300 * time.Second

// State is the lifecycle phase of a session.
type State int

// Session lifecycle: Ready -> Running -> Finished -> (Ready).
const (
	StateReady State = iota
	StateRunning
	StateFinished
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Clock supplies the current time. Injectable for deterministic tests.
type Clock func() time.Time

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLimit overrides the session duration limit.
func WithLimit(limit time.Duration) Option {
	return func(c *Controller) { c.limit = limit }
}

// Controller drives one typing session at a time. It reacts to two
// stimuli, full-input updates and periodic ticks, both delivered on the
// presentation event loop; it is not safe for concurrent use.
type Controller struct {
	bank       *bank.Bank
	difficulty model.Difficulty
	clock      Clock
	limit      time.Duration

	state     State
	target    []rune
	input     []rune
	startedAt time.Time
	elapsed   time.Duration
	result    *model.Result
}

// New creates a controller with a freshly drawn sentence, in Ready state.
func New(b *bank.Bank, d model.Difficulty, opts ...Option) (*Controller, error) {
	c := &Controller{
		bank:  b,
		clock: time.Now,
		limit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.SetDifficulty(d); err != nil {
		return nil, err
	}
	return c, nil
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Difficulty returns the currently selected tier.
func (c *Controller) Difficulty() model.Difficulty { return c.difficulty }

// Target returns the target sentence.
func (c *Controller) Target() []rune { return c.target }

// Input returns the current typed text.
func (c *Controller) Input() []rune { return c.input }

// Limit returns the session duration limit.
func (c *Controller) Limit() time.Duration { return c.limit }

// Classify classifies the current input against the target sentence.
func (c *Controller) Classify() ([]model.CharClass, bool) {
	return compare.Classify(c.input, c.target)
}

// Type replaces the session's typed text with the full current input.
// The first character entered starts the timer; input arriving after the
// session finished is ignored. An exact full match finishes the session.
func (c *Controller) Type(input []rune) {
	if c.state == StateFinished {
		return
	}
	if c.state == StateReady && len(input) > 0 {
		c.state = StateRunning
		c.startedAt = c.clock()
	}
	c.input = append(c.input[:0], input...)
	if c.state != StateRunning {
		return
	}
	if _, complete := compare.Classify(c.input, c.target); complete {
		c.finish()
	}
}

// Tick checks the time limit. Ticks arriving while the session is not
// running are ignored; cancellation races with the timer are expected.
func (c *Controller) Tick() {
	if c.state != StateRunning {
		return
	}
	if c.Elapsed() >= c.limit {
		c.finish()
	}
}

// Elapsed reports time since the first keystroke. It is zero in Ready,
// monotonically non-decreasing while Running, and frozen once Finished.
func (c *Controller) Elapsed() time.Duration {
	switch c.state {
	case StateReady:
		return 0
	case StateRunning:
		if e := c.clock().Sub(c.startedAt); e > c.elapsed {
			c.elapsed = e
		}
		return c.elapsed
	default:
		return c.elapsed
	}
}

// Remaining reports time left before the limit, clamped at zero.
func (c *Controller) Remaining() time.Duration {
	r := c.limit - c.Elapsed()
	if r < 0 {
		return 0
	}
	return r
}

// LiveWPM computes the live net WPM estimate for the current input.
func (c *Controller) LiveWPM() float64 {
	return compare.NetWPM(len(c.input), c.Elapsed())
}

// Result returns the summary of a finished session, nil otherwise.
func (c *Controller) Result() *model.Result { return c.result }

// Reset abandons the current attempt: typed text is cleared, the timer is
// discarded, and no Result is produced. The target sentence is kept; a
// fresh one is drawn only by Start or Acknowledge. Resetting an already
// Ready session is a no-op.
func (c *Controller) Reset() {
	c.state = StateReady
	c.input = nil
	c.startedAt = time.Time{}
	c.elapsed = 0
	c.result = nil
}

// Start begins a new attempt with a freshly drawn sentence for the
// current difficulty.
func (c *Controller) Start() error {
	return c.SetDifficulty(c.difficulty)
}

// Acknowledge dismisses the results of a finished session and prepares a
// new Ready session with a fresh sentence. It is a no-op unless Finished.
func (c *Controller) Acknowledge() error {
	if c.state != StateFinished {
		return nil
	}
	return c.Start()
}

// SetDifficulty switches tiers, draws a fresh sentence, and resets to a
// new Ready session. The difficulty is validated before it reaches the
// sentence bank.
func (c *Controller) SetDifficulty(d model.Difficulty) error {
	parsed, err := model.ParseDifficulty(string(d))
	if err != nil {
		return err
	}
	s, err := c.bank.Pick(parsed)
	if err != nil {
		return fmt.Errorf("failed to draw sentence: %w", err)
	}
	c.difficulty = parsed
	c.target = []rune(s.Text)
	c.Reset()
	return nil
}

// finish moves the session to Finished and summarizes it exactly once.
// A timeout overshoot from a late tick is clamped to the limit.
func (c *Controller) finish() {
	e := c.Elapsed()
	if e > c.limit {
		e = c.limit
	}
	c.elapsed = e
	c.state = StateFinished

	classes, _ := compare.Classify(c.input, c.target)
	c.result = &model.Result{
		Duration:   e,
		NetWPM:     compare.NetWPM(len(c.input), e),
		CharErrors: compare.CountErrors(classes),
	}
}
