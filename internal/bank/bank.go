// Package bank loads tiered sentence banks and picks practice sentences.
package bank

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/Phantom-J-A-T/Type-speed-tester/internal/model"
)

// Sentinel errors for bank loading and selection.
var (
	ErrLoad      = errors.New("failed to load sentence bank")
	ErrMalformed = errors.New("malformed sentence bank")
	ErrEmptyTier = errors.New("no sentences for tier")
)

// Sentence is one practice target with its difficulty tier.
type Sentence struct {
	Text       string
	Difficulty model.Difficulty
}

// Bank holds sentences grouped by difficulty tier.
type Bank struct {
	tiers map[model.Difficulty][]string
	rnd   *rand.Rand
}

// Load reads a sentence bank file. The file groups sentences under
// bracketed tier headers:
//
//	[EASY]
//	The quick brown fox jumps over the lazy dog.
//
// Blank lines are ignored. Unknown tier tags and sentences appearing
// before any header are malformed.
func Load(path string, rnd *rand.Rand) (*Bank, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only sentence bank.
			_ = cerr
		}
	}()
	return Parse(file, rnd)
}

// Parse reads a sentence bank from r. See Load for the format.
func Parse(r io.Reader, rnd *rand.Rand) (*Bank, error) {
	tiers := map[model.Difficulty][]string{}
	var current model.Difficulty
	haveTier := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			tag := line[1 : len(line)-1]
			d, err := model.ParseDifficulty(tag)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: unknown tier tag %q", ErrMalformed, lineNo, tag)
			}
			current = d
			haveTier = true
			continue
		}
		if !haveTier {
			return nil, fmt.Errorf("%w: line %d: sentence before any tier header", ErrMalformed, lineNo)
		}
		tiers[current] = append(tiers[current], line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	total := 0
	for _, sentences := range tiers {
		total += len(sentences)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: bank contains no sentences", ErrLoad)
	}
	return &Bank{tiers: tiers, rnd: rnd}, nil
}

// Pick selects a sentence uniformly at random from the requested tier.
func (b *Bank) Pick(d model.Difficulty) (Sentence, error) {
	if _, err := model.ParseDifficulty(string(d)); err != nil {
		return Sentence{}, err
	}
	candidates := b.tiers[d]
	if len(candidates) == 0 {
		return Sentence{}, fmt.Errorf("%w: %s", ErrEmptyTier, d)
	}
	return Sentence{
		Text:       candidates[b.rnd.Intn(len(candidates))],
		Difficulty: d,
	}, nil
}

// Counts reports the number of sentences per tier.
func (b *Bank) Counts() map[model.Difficulty]int {
	counts := make(map[model.Difficulty]int, len(b.tiers))
	for d, sentences := range b.tiers {
		counts[d] = len(sentences)
	}
	return counts
}
