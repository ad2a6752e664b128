package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lapse/internal/cli/formatter"
	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/recorder"
	"github.com/alexanderramin/lapse/internal/service"
	"github.com/alexanderramin/lapse/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// displayInterval is how often the running stopwatch is redrawn. The clock
// itself advances on its own 10ms ticks.
const displayInterval = 50 * time.Millisecond

// maxBatchRows caps the batch list; older sessions collapse into one line.
const maxBatchRows = 8

type refreshMsg time.Time

type batchSavedMsg struct {
	result service.SaveResult
	err    error
}

// batchSnapshot is a copy of the recorder's batch handed to the save Cmd,
// which runs off the update loop. The recorder is reset on the update loop
// once the save lands.
type batchSnapshot []domain.Session

func (b *batchSnapshot) Batch() []domain.Session {
	out := make([]domain.Session, len(*b))
	copy(out, *b)
	return out
}

func (b *batchSnapshot) TotalTime() int64 { return domain.SumDurations(*b) }

func (b *batchSnapshot) Reset() { *b = nil }

type timerKeyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Save    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func newTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "save")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Save, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// confirmKeys is the key map shown while a save is awaiting an answer.
type confirmKeys struct{ timerKeyMap }

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// timerModel is the stopwatch screen. Each start/stop cycle records one
// session covering the time accumulated since the matching start.
type timerModel struct {
	ctx   context.Context
	clock *timer.Clock
	rec   *recorder.Recorder
	sets  service.SessionSetService
	loc   *time.Location

	keys timerKeyMap
	help help.Model

	// segmentStart is the clock reading when the current run began.
	segmentStart int64
	confirming   bool
	saving       bool
	// quitPending defers a quit until the in-flight save reports back.
	quitPending  bool
	status       string
	err          error
	quitting     bool
}

func newTimerModel(ctx context.Context, clock *timer.Clock, rec *recorder.Recorder, sets service.SessionSetService, loc *time.Location) *timerModel {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return &timerModel{
		ctx:   ctx,
		clock: clock,
		rec:   rec,
		sets:  sets,
		loc:   loc,
		keys:  newTimerKeyMap(),
		help:  h,
	}
}

func (m *timerModel) Init() tea.Cmd {
	return nil
}

func refreshCmd() tea.Cmd {
	return tea.Tick(displayInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m *timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		if m.clock.State() == timer.Running {
			return m, refreshCmd()
		}
		return m, nil

	case batchSavedMsg:
		return m.handleSaved(msg)

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *timerModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.saving {
			m.quitPending = true
			m.status = "Finishing save..."
			return m, nil
		}
		return m.quit()
	}
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.clock.State() == timer.Running {
			m.stopAndRecord()
			return m, nil
		}
		m.segmentStart = m.clock.ElapsedMs()
		m.clock.Start()
		m.status, m.err = "", nil
		return m, refreshCmd()

	case key.Matches(msg, m.keys.Reset):
		m.clock.Reset()
		m.rec.Reset()
		m.segmentStart = 0
		m.status, m.err = "Reset.", nil
		return m, nil

	case key.Matches(msg, m.keys.Save):
		switch {
		case m.clock.State() == timer.Running:
			m.status = "Stop the timer before saving."
		case m.rec.Len() == 0:
			m.status = "Nothing to save."
		default:
			m.confirming = true
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *timerModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirming = false
		m.saving = true
		m.status = "Saving..."
		return m, m.saveBatch()
	case key.Matches(msg, m.keys.Cancel):
		m.confirming = false
		m.status = "Save cancelled."
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	}
	return m, nil
}

func (m *timerModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.clock.Stop()
	return m, tea.Quit
}

// stopAndRecord halts the clock and records the run that just ended.
func (m *timerModel) stopAndRecord() {
	m.clock.Stop()
	s, ok := m.rec.RecordStop(m.clock.ElapsedMs() - m.segmentStart)
	if ok {
		m.status = "Recorded " + formatter.Elapsed(s.DurationMs) + "."
	}
}

// saveBatch persists a snapshot of the batch off the update loop.
func (m *timerModel) saveBatch() tea.Cmd {
	ctx, sets := m.ctx, m.sets
	snapshot := batchSnapshot(m.rec.Batch())
	return func() tea.Msg {
		result, err := sets.SaveBatch(ctx, &snapshot)
		return batchSavedMsg{result: result, err: err}
	}
}

func (m *timerModel) handleSaved(msg batchSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	m.applySaved(msg)
	if m.quitPending {
		return m.quit()
	}
	return m, nil
}

func (m *timerModel) applySaved(msg batchSavedMsg) {
	if msg.err != nil {
		m.err = msg.err
		m.status = ""
		return
	}
	switch msg.result.Outcome {
	case service.OutcomeApplied:
		m.rec.Reset()
		m.clock.Reset()
		m.segmentStart = 0
		m.status = fmt.Sprintf("Saved %q.", msg.result.Set.Name)
	case service.OutcomeDeclined:
		m.status = "Save cancelled."
	default:
		m.status = "Nothing to save."
	}
}

func (m *timerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	elapsed := lipgloss.NewStyle().Foreground(formatter.ColorFg).Bold(true).Padding(0, 1).
		Render(formatter.Elapsed(m.clock.ElapsedMs()))
	b.WriteString(formatter.Header("lapse"))
	b.WriteString("\n\n")
	b.WriteString(elapsed + "  " + formatter.StateIndicator(m.clock.State()))
	b.WriteString("\n\n")

	batch := m.rec.Batch()
	b.WriteString(formatter.Bold(fmt.Sprintf("Batch (%d)", len(batch))))
	b.WriteString("\n")
	if len(batch) == 0 {
		b.WriteString(formatter.Dim("  no sessions yet"))
		b.WriteString("\n")
	} else {
		start := 0
		if len(batch) > maxBatchRows {
			start = len(batch) - maxBatchRows
			b.WriteString(formatter.Dim(fmt.Sprintf("  … %d earlier", start)))
			b.WriteString("\n")
		}
		for i := start; i < len(batch); i++ {
			s := batch[i]
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				formatter.Dim(fmt.Sprintf("%2d", i+1)),
				formatter.Elapsed(s.DurationMs),
				formatter.Dim(formatter.ClockTime(s.Timestamp, m.loc)))
		}
	}
	fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Total"), formatter.Bold(formatter.Elapsed(m.rec.TotalTime())))

	b.WriteString("\n")
	switch {
	case m.confirming:
		n := m.rec.Len()
		b.WriteString(formatter.StyleYellow.Render(fmt.Sprintf("Save %s totalling %s? (y/n)",
			formatter.Plural(n, "session", "sessions"), formatter.Elapsed(m.rec.TotalTime()))))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(formatter.Dim(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirming {
		b.WriteString(m.help.View(confirmKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}
