package session

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/Phantom-J-A-T/Type-speed-tester/internal/bank"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/model"
)

const testBank = `
[EASY]
cat

[MEDIUM]
the quick brown fox

[HARD]
sphinx of black quartz judge my vow
`

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeClock) {
	t.Helper()
	b, err := bank.Parse(strings.NewReader(testBank), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("parse bank: %v", err)
	}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	ctrl, err := New(b, model.Easy, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl, clock
}

func TestNewStartsReady(t *testing.T) {
	ctrl, _ := newTestController(t)
	if ctrl.State() != StateReady {
		t.Fatalf("expected ready state, got %v", ctrl.State())
	}
	if got := string(ctrl.Target()); got != "cat" {
		t.Fatalf("unexpected target: %q", got)
	}
	if ctrl.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed in ready, got %v", ctrl.Elapsed())
	}
	if ctrl.Result() != nil {
		t.Fatalf("expected no result in ready")
	}
}

func TestFirstKeystrokeStartsTimerOnce(t *testing.T) {
	ctrl, clock := newTestController(t)

	ctrl.Type([]rune("c"))
	if ctrl.State() != StateRunning {
		t.Fatalf("expected running after first keystroke, got %v", ctrl.State())
	}

	clock.Advance(10 * time.Second)
	ctrl.Type([]rune("ca"))
	if got := ctrl.Elapsed(); got != 10*time.Second {
		t.Fatalf("expected elapsed measured from first keystroke, got %v", got)
	}

	// Deleting all input must not re-arm the timer.
	ctrl.Type(nil)
	clock.Advance(5 * time.Second)
	if got := ctrl.Elapsed(); got != 15*time.Second {
		t.Fatalf("expected elapsed 15s, got %v", got)
	}
}

func TestEmptyInputKeepsReady(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctrl.Type(nil)
	if ctrl.State() != StateReady {
		t.Fatalf("expected ready after empty input, got %v", ctrl.State())
	}
}

func TestCompletionFinishes(t *testing.T) {
	ctrl, clock := newTestController(t)

	ctrl.Type([]rune("c"))
	clock.Advance(30 * time.Second)
	ctrl.Type([]rune("cat"))

	if ctrl.State() != StateFinished {
		t.Fatalf("expected finished on exact match, got %v", ctrl.State())
	}
	res := ctrl.Result()
	if res == nil {
		t.Fatalf("expected result after finish")
	}
	if res.Duration != 30*time.Second {
		t.Fatalf("expected 30s duration, got %v", res.Duration)
	}
	if math.Abs(res.NetWPM-1.2) > 1e-9 {
		t.Fatalf("expected 1.2 WPM, got %v", res.NetWPM)
	}
	if res.CharErrors != 0 {
		t.Fatalf("expected 0 errors, got %d", res.CharErrors)
	}
}

func TestMismatchAtFullLengthDoesNotFinish(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctrl.Type([]rune("cbt"))
	if ctrl.State() != StateRunning {
		t.Fatalf("expected still running with mismatch, got %v", ctrl.State())
	}
	ctrl.Type([]rune("catx"))
	if ctrl.State() != StateRunning {
		t.Fatalf("expected still running with trailing extra, got %v", ctrl.State())
	}
}

func TestTimeoutFinishes(t *testing.T) {
	ctrl, clock := newTestController(t)

	ctrl.Type([]rune("ca"))
	clock.Advance(DefaultLimit)
	ctrl.Tick()

	if ctrl.State() != StateFinished {
		t.Fatalf("expected finished on timeout, got %v", ctrl.State())
	}
	res := ctrl.Result()
	if res.Duration != DefaultLimit {
		t.Fatalf("expected duration %v, got %v", DefaultLimit, res.Duration)
	}
	// Unreached characters are not errors; only typed positions count.
	if res.CharErrors != 0 {
		t.Fatalf("expected 0 errors for incomplete input, got %d", res.CharErrors)
	}
}

func TestLateTickClampsToLimit(t *testing.T) {
	ctrl, clock := newTestController(t)

	ctrl.Type([]rune("c"))
	clock.Advance(DefaultLimit + 7*time.Second)
	ctrl.Tick()

	if res := ctrl.Result(); res.Duration != DefaultLimit {
		t.Fatalf("expected duration clamped to %v, got %v", DefaultLimit, res.Duration)
	}
}

func TestInputAfterFinishedIgnored(t *testing.T) {
	ctrl, clock := newTestController(t)
	ctrl.Type([]rune("c"))
	clock.Advance(time.Second)
	ctrl.Type([]rune("cat"))

	ctrl.Type([]rune("catzzz"))
	if got := string(ctrl.Input()); got != "cat" {
		t.Fatalf("expected input frozen at %q, got %q", "cat", got)
	}
	if ctrl.State() != StateFinished {
		t.Fatalf("expected state to stay finished, got %v", ctrl.State())
	}
}

func TestTickOutsideRunningIsNoOp(t *testing.T) {
	ctrl, clock := newTestController(t)

	ctrl.Tick()
	if ctrl.State() != StateReady {
		t.Fatalf("expected tick in ready to be ignored, got %v", ctrl.State())
	}

	ctrl.Type([]rune("c"))
	clock.Advance(time.Second)
	ctrl.Type([]rune("cat"))
	res := ctrl.Result()

	clock.Advance(time.Hour)
	ctrl.Tick()
	if ctrl.Result() != res {
		t.Fatalf("expected result untouched by late tick")
	}
}

func TestElapsedFrozenAfterFinish(t *testing.T) {
	ctrl, clock := newTestController(t)
	ctrl.Type([]rune("c"))
	clock.Advance(12 * time.Second)
	ctrl.Type([]rune("cat"))

	clock.Advance(time.Minute)
	if got := ctrl.Elapsed(); got != 12*time.Second {
		t.Fatalf("expected elapsed frozen at 12s, got %v", got)
	}
}

func TestElapsedMonotonic(t *testing.T) {
	ctrl, clock := newTestController(t)
	ctrl.Type([]rune("c"))
	clock.Advance(10 * time.Second)
	if got := ctrl.Elapsed(); got != 10*time.Second {
		t.Fatalf("expected 10s, got %v", got)
	}
	// A wall clock stepping backwards must not roll elapsed back.
	clock.Advance(-3 * time.Second)
	if got := ctrl.Elapsed(); got != 10*time.Second {
		t.Fatalf("expected elapsed to hold at 10s, got %v", got)
	}
}

func TestResetAbandonsSilently(t *testing.T) {
	ctrl, clock := newTestController(t)
	target := string(ctrl.Target())

	ctrl.Type([]rune("ca"))
	clock.Advance(20 * time.Second)
	ctrl.Reset()

	if ctrl.State() != StateReady {
		t.Fatalf("expected ready after reset, got %v", ctrl.State())
	}
	if ctrl.Result() != nil {
		t.Fatalf("expected no result on manual reset")
	}
	if len(ctrl.Input()) != 0 {
		t.Fatalf("expected cleared input, got %q", string(ctrl.Input()))
	}
	if got := string(ctrl.Target()); got != target {
		t.Fatalf("expected same target after reset, got %q", got)
	}
	if ctrl.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed after reset, got %v", ctrl.Elapsed())
	}
}

func TestRepeatedResetInReadyIsIdempotent(t *testing.T) {
	ctrl, _ := newTestController(t)
	before := string(ctrl.Target())
	ctrl.Reset()
	ctrl.Reset()
	if ctrl.State() != StateReady || string(ctrl.Target()) != before || ctrl.Result() != nil {
		t.Fatalf("expected repeated reset in ready to change nothing")
	}
}

func TestAcknowledgeOnlyFromFinished(t *testing.T) {
	ctrl, clock := newTestController(t)

	if err := ctrl.Acknowledge(); err != nil {
		t.Fatalf("acknowledge in ready: %v", err)
	}
	if ctrl.State() != StateReady {
		t.Fatalf("expected acknowledge in ready to be a no-op")
	}

	ctrl.Type([]rune("c"))
	clock.Advance(time.Second)
	ctrl.Type([]rune("cat"))
	if err := ctrl.Acknowledge(); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if ctrl.State() != StateReady {
		t.Fatalf("expected ready after acknowledge, got %v", ctrl.State())
	}
	if ctrl.Result() != nil {
		t.Fatalf("expected result discarded after acknowledge")
	}
	if len(ctrl.Input()) != 0 {
		t.Fatalf("expected cleared input after acknowledge")
	}
}

func TestSetDifficulty(t *testing.T) {
	ctrl, _ := newTestController(t)

	if err := ctrl.SetDifficulty(model.Medium); err != nil {
		t.Fatalf("set difficulty: %v", err)
	}
	if ctrl.Difficulty() != model.Medium {
		t.Fatalf("expected MEDIUM, got %v", ctrl.Difficulty())
	}
	if got := string(ctrl.Target()); got != "the quick brown fox" {
		t.Fatalf("unexpected target: %q", got)
	}
	if ctrl.State() != StateReady {
		t.Fatalf("expected fresh ready session, got %v", ctrl.State())
	}

	if err := ctrl.SetDifficulty(model.Difficulty("IMPOSSIBLE")); !errors.Is(err, model.ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
	if ctrl.Difficulty() != model.Medium {
		t.Fatalf("rejected difficulty must not stick, got %v", ctrl.Difficulty())
	}
}

func TestSetDifficultyEmptyTier(t *testing.T) {
	b, err := bank.Parse(strings.NewReader("[EASY]\ncat\n"), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("parse bank: %v", err)
	}
	ctrl, err := New(b, model.Easy, WithClock(time.Now))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if err := ctrl.SetDifficulty(model.Hard); !errors.Is(err, bank.ErrEmptyTier) {
		t.Fatalf("expected ErrEmptyTier, got %v", err)
	}
}

func TestLiveWPM(t *testing.T) {
	ctrl, clock := newTestController(t, WithLimit(time.Hour))

	if ctrl.LiveWPM() != 0 {
		t.Fatalf("expected 0 WPM before typing, got %v", ctrl.LiveWPM())
	}

	b, err := bank.Parse(strings.NewReader("[EASY]\nabcdefghij extra tail\n"), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("parse bank: %v", err)
	}
	ctrl, err = New(b, model.Easy, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctrl.Type([]rune("a"))
	clock.Advance(time.Minute)
	ctrl.Type([]rune("abcdefghij"))
	if got := ctrl.LiveWPM(); math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("expected 2.0 WPM, got %v", got)
	}
}

func TestShortLimitOption(t *testing.T) {
	ctrl, clock := newTestController(t, WithLimit(10*time.Second))
	ctrl.Type([]rune("c"))
	clock.Advance(9 * time.Second)
	ctrl.Tick()
	if ctrl.State() != StateRunning {
		t.Fatalf("expected running before limit, got %v", ctrl.State())
	}
	clock.Advance(time.Second)
	ctrl.Tick()
	if ctrl.State() != StateFinished {
		t.Fatalf("expected finished at limit, got %v", ctrl.State())
	}
}
