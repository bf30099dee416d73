package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Phantom-J-A-T/Type-speed-tester/internal/model"
)

// cell is one rendered character with its display width.
type cell struct {
	text  string
	width int
	space bool
}

// buildCells renders the target sentence against the typed input. Typed
// positions use their classification style; untyped positions are pending,
// with the word under the cursor highlighted. Extra characters typed past
// the end of the target are appended in the extra style. The cursor
// position is underlined.
func buildCells(target, input []rune, classes []model.CharClass, theme Theme) []cell {
	cursor := len(input)
	wordStart, wordEnd := cursorWord(target, cursor)

	cells := make([]cell, 0, len(target)+max(0, len(input)-len(target)))
	for i, r := range target {
		displayed := r
		var style = theme.Pending
		switch {
		case i < len(input):
			switch classes[i] {
			case model.Correct:
				style = theme.Correct
			default:
				style = theme.Incorrect
				if r == ' ' {
					// Make a wrong character typed over a space visible.
					displayed = '·'
				}
			}
		case r != ' ' && i >= wordStart && i < wordEnd:
			style = theme.CurrentWord
		}
		if i == cursor {
			style = style.Underline(true)
		}
		cells = append(cells, cell{
			text:  style.Render(string(displayed)),
			width: runewidth.RuneWidth(displayed),
			space: r == ' ',
		})
	}
	for _, r := range input[min(len(input), len(target)):] {
		cells = append(cells, cell{
			text:  theme.Extra.Render(string(r)),
			width: runewidth.RuneWidth(r),
			space: r == ' ',
		})
	}
	return cells
}

// cursorWord returns the [start, end) bounds of the word containing or
// following the cursor, or [0, 0) when there is none.
func cursorWord(target []rune, cursor int) (int, int) {
	if cursor < 0 || cursor >= len(target) {
		return 0, 0
	}
	start := cursor
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	// Cursor on a space: highlight the next word instead.
	for start < len(target) && target[start] == ' ' {
		start++
	}
	end := start
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return start, end
}

// wrapCells soft-wraps cells to the given display width using greedy word
// wrapping. Spaces falling on a line break are dropped; words wider than a
// whole line are split hard.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}

	var out strings.Builder
	lineWidth := 0
	var pending []cell
	pendingWidth := 0

	emitWord := func(word []cell, wordWidth int) {
		switch {
		case lineWidth == 0:
			// Line start: spaces at the break are dropped.
		case lineWidth+pendingWidth+wordWidth <= width:
			for _, sp := range pending {
				out.WriteString(sp.text)
			}
			lineWidth += pendingWidth
		default:
			out.WriteByte('\n')
			lineWidth = 0
		}
		for _, c := range word {
			if lineWidth+c.width > width && lineWidth > 0 {
				out.WriteByte('\n')
				lineWidth = 0
			}
			out.WriteString(c.text)
			lineWidth += c.width
		}
		pending = pending[:0]
		pendingWidth = 0
	}

	var word []cell
	wordWidth := 0
	for _, c := range cells {
		if c.space {
			if len(word) > 0 {
				emitWord(word, wordWidth)
				word, wordWidth = word[:0], 0
			}
			pending = append(pending, c)
			pendingWidth += c.width
			continue
		}
		word = append(word, c)
		wordWidth += c.width
	}
	if len(word) > 0 {
		emitWord(word, wordWidth)
	}
	// Trailing spaces still carry the cursor; keep them visible.
	for _, sp := range pending {
		if lineWidth+sp.width > width && lineWidth > 0 {
			out.WriteByte('\n')
			lineWidth = 0
		}
		out.WriteString(sp.text)
		lineWidth += sp.width
	}
	return out.String()
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.text)
	}
	return b.String()
}
