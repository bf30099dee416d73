// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Phantom-J-A-T/Type-speed-tester/internal/model"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/session"
)

// countdownGrace pads the countdown past the session limit so the final
// tick still fires after any clock skew between timer and controller.
const countdownGrace = time.Second

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctrl  *session.Controller
	theme Theme
	keys  keyMap
	help  help.Model

	countdown timer.Model

	width  int
	height int

	statusErr string
}

// NewModel constructs a typing TUI model.
func NewModel(ctrl *session.Controller, theme Theme) *Model {
	m := &Model{
		ctrl:  ctrl,
		theme: theme,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	m.freshCountdown()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case timer.TickMsg, timer.StartStopMsg, timer.TimeoutMsg:
		return m.handleTimer(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTimer(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.countdown, cmd = m.countdown.Update(msg)

	wasRunning := m.ctrl.State() == session.StateRunning
	m.ctrl.Tick()
	if wasRunning && m.ctrl.State() == session.StateFinished {
		return m, tea.Batch(cmd, m.countdown.Stop())
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.ctrl.State() == session.StateFinished {
		if key.Matches(msg, m.keys.Acknowledge) {
			return m, m.renewSession(m.ctrl.Acknowledge())
		}
		if key.Matches(msg, m.keys.Theme) {
			m.theme = m.theme.Toggle()
		}
		// Terminal state: everything else, including typing, is ignored.
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Start):
		return m, m.renewSession(m.ctrl.Start())
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.freshCountdown()
		m.statusErr = ""
		return m, nil
	case key.Matches(msg, m.keys.Difficulty):
		return m, m.renewSession(m.ctrl.SetDifficulty(nextDifficulty(m.ctrl.Difficulty())))
	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Toggle()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		input := m.ctrl.Input()
		if len(input) == 0 {
			return m, nil
		}
		return m, m.typeInput(input[:len(input)-1])
	case tea.KeySpace:
		return m, m.typeInput(append(m.ctrl.Input(), ' '))
	case tea.KeyRunes:
		return m, m.typeInput(append(m.ctrl.Input(), msg.Runes...))
	default:
		return m, nil
	}
}

// typeInput feeds the full updated input to the controller and starts or
// stops the countdown on the Ready->Running and Running->Finished edges.
func (m *Model) typeInput(input []rune) tea.Cmd {
	prev := m.ctrl.State()
	m.ctrl.Type(input)
	now := m.ctrl.State()

	switch {
	case prev == session.StateReady && now == session.StateRunning:
		return m.countdown.Init()
	case prev == session.StateRunning && now == session.StateFinished:
		return m.countdown.Stop()
	}
	return nil
}

// renewSession discards the old countdown after the controller replaced
// the session. A failed sentence draw keeps the session and shows why.
func (m *Model) renewSession(err error) tea.Cmd {
	if err != nil {
		m.statusErr = err.Error()
		return nil
	}
	m.statusErr = ""
	cmd := m.countdown.Stop()
	m.freshCountdown()
	return cmd
}

func (m *Model) freshCountdown() {
	m.countdown = timer.NewWithInterval(m.ctrl.Limit()+countdownGrace, time.Second)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.ctrl.State() == session.StateFinished {
		return m.viewResult()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	classes, _ := m.ctrl.Classify()
	cells := buildCells(m.ctrl.Target(), m.ctrl.Input(), classes, m.theme)

	if m.width == 0 || m.height == 0 {
		return renderCells(cells)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapCells(cells, contentWidth))

	footer := m.renderFooter()
	helpLine := m.help.View(m.keys)
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpRow := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpLine)
	return body + "\n" + footerLine + "\n" + helpRow
}

func (m *Model) viewResult() string {
	res := m.ctrl.Result()
	if res == nil {
		return ""
	}
	lines := []string{
		m.theme.ModalTitle.Render("Test complete"),
		"",
		fmt.Sprintf("Duration    %s", m.theme.ModalValue.Render(formatClock(res.Duration))),
		fmt.Sprintf("Net WPM     %s", m.theme.ModalValue.Render(fmt.Sprintf("%.1f", res.NetWPM))),
		fmt.Sprintf("Errors      %s", m.theme.ModalValue.Render(fmt.Sprintf("%d", res.CharErrors))),
		"",
		m.theme.Footer.Render("enter: continue · ctrl+c: quit"),
	}
	modal := m.theme.Modal.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("WPM %.1f", m.ctrl.LiveWPM()),
		fmt.Sprintf("%s left", formatClock(m.ctrl.Remaining())),
		string(m.ctrl.Difficulty()),
	}
	if m.statusErr != "" {
		return m.theme.Status.Render(m.statusErr)
	}
	return m.theme.Footer.Render(strings.Join(segments, "  ·  "))
}

func nextDifficulty(d model.Difficulty) model.Difficulty {
	all := model.Difficulties()
	for i, candidate := range all {
		if candidate == d {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func formatClock(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
