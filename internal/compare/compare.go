// Package compare implements character-level comparison of typed text
// against a target sentence, plus net WPM.
package compare

import (
	"time"

	"github.com/Phantom-J-A-T/Type-speed-tester/internal/model"
)

// charsPerWord is the standard typing-test convention: five characters
// count as one "word". WPM derived from it is a character-count proxy,
// not a whitespace-tokenized word count.
const charsPerWord = 5.0

// Classify compares typed against target position by position. Position i
// is Correct when it matches target[i], Incorrect when it differs, and
// Extra when it lies beyond the end of the target. complete is true iff
// typed equals target exactly, with no mismatches and no trailing extras.
func Classify(typed, target []rune) (classes []model.CharClass, complete bool) {
	classes = make([]model.CharClass, len(typed))
	mismatched := false
	for i, r := range typed {
		switch {
		case i >= len(target):
			classes[i] = model.Extra
		case r == target[i]:
			classes[i] = model.Correct
		default:
			classes[i] = model.Incorrect
			mismatched = true
		}
	}
	complete = len(typed) == len(target) && !mismatched
	return classes, complete
}

// NetWPM computes (typedLen / 5) / elapsed-minutes. It reports 0 when
// nothing was typed or no time has elapsed.
func NetWPM(typedLen int, elapsed time.Duration) float64 {
	if typedLen <= 0 || elapsed <= 0 {
		return 0
	}
	minutes := elapsed.Minutes()
	return (float64(typedLen) / charsPerWord) / minutes
}

// CountErrors counts Incorrect and Extra classifications. Characters the
// user never reached are not counted; only typed positions are classified.
func CountErrors(classes []model.CharClass) int {
	errs := 0
	for _, c := range classes {
		if c != model.Correct {
			errs++
		}
	}
	return errs
}
