// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDifficulty reports a difficulty value outside the known tiers.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty selects a sentence tier.
type Difficulty string

// Known difficulty tiers.
const (
	Easy   Difficulty = "EASY"
	Medium Difficulty = "MEDIUM"
	Hard   Difficulty = "HARD"
)

// Difficulties lists all tiers in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty validates a difficulty value, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToUpper(strings.TrimSpace(s))) {
	case Easy:
		return Easy, nil
	case Medium:
		return Medium, nil
	case Hard:
		return Hard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
}

// CharClass classifies one typed character position.
type CharClass int

// Classification of a typed position against the target sentence.
const (
	Correct CharClass = iota
	Incorrect
	Extra
)

// String returns a human-readable class name.
func (c CharClass) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Extra:
		return "extra"
	default:
		return "unknown"
	}
}

// Result summarizes one finished typing session.
type Result struct {
	Duration   time.Duration
	NetWPM     float64
	CharErrors int
}

// Config defines practice settings.
type Config struct {
	Difficulty Difficulty
	Theme      string
	Sentences  string
}
