package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// =============================================================================
// AssembleModel - live record counter during graph assembly
// =============================================================================

// Large river exports carry tens of thousands of records; the counter
// shows that discovery is moving while the builder works through them.

type assembleCountMsg struct{ records int }

type assembleDoneMsg struct{ err error }

type assembleTickMsg time.Time

// assembleModel is the bubbletea model behind the live counter.
type assembleModel struct {
	label   string
	records int
	frame   int
	frames  []string
	err     error
}

func newAssembleModel(label string) assembleModel {
	return assembleModel{
		label:  label,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

func assembleTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return assembleTickMsg(t)
	})
}

func (m assembleModel) Init() tea.Cmd {
	return assembleTick()
}

func (m assembleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assembleTickMsg:
		m.frame++
		return m, assembleTick()
	case assembleCountMsg:
		m.records = msg.records
		return m, nil
	case assembleDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m assembleModel) View() string {
	if m.err != nil {
		return ""
	}
	frame := m.frames[m.frame%len(m.frames)]
	counter := ""
	if m.records > 0 {
		counter = StyleDim.Render(fmt.Sprintf("  %d records", m.records))
	}
	return styleIconSpinner.Render(frame) + " " + StyleDim.Render(m.label) + counter
}

// runAssemble runs fn, showing the live counter when stderr is a
// terminal. fn reports its record count through the callback; in
// non-interactive runs the callback is a no-op and progress appears only
// in the logs.
func runAssemble(ctx context.Context, label string, fn func(report func(records int)) error) error {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn(func(int) {})
	}

	p := tea.NewProgram(newAssembleModel(label),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	errCh := make(chan error, 1)
	go func() {
		err := fn(func(records int) {
			p.Send(assembleCountMsg{records: records})
		})
		p.Send(assembleDoneMsg{err: err})
		errCh <- err
	}()

	if _, err := p.Run(); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return <-errCh
}
