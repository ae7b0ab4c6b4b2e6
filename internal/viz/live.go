package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/askeland/multistep/internal/ode"
)

const historyCapacity = 600

// Sample is one output-boundary snapshot of an in-progress run.
type Sample struct {
	Time  float64
	State ode.State
	Dt    float64
	Order int
}

type TickMsg time.Time

// Model streams samples from a running solver into a terminal view.
type Model struct {
	problemName string
	samples     <-chan Sample
	cancel      context.CancelFunc

	history   []Sample
	component int
	running   bool
	done      bool
}

func NewModel(problemName string, samples <-chan Sample, cancel context.CancelFunc) Model {
	return Model{
		problemName: problemName,
		samples:     samples,
		cancel:      cancel,
		history:     make([]Sample, 0, historyCapacity),
		running:     true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "c":
			if len(m.history) > 0 {
				m.component = (m.component + 1) % len(m.history[0].State)
			}
		}
	case TickMsg:
		if m.running {
			m.drain()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// drain pulls everything currently buffered without blocking.
func (m *Model) drain() {
	for {
		select {
		case smp, ok := <-m.samples:
			if !ok {
				m.done = true
				return
			}
			m.history = append(m.history, smp)
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		default:
			return
		}
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.problemName)) + "\n")

	switch {
	case m.done:
		s.WriteString(statusDone.Render("DONE") + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.history) > 1 {
		trace := make([]float64, len(m.history))
		dts := make([]float64, len(m.history))
		for i, smp := range m.history {
			trace[i] = smp.State[m.component]
			dts[i] = smp.Dt
		}
		caption := fmt.Sprintf("x%d", m.component)
		chart := asciigraph.Plot(trace, asciigraph.Height(8), asciigraph.Width(56), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
		s.WriteString(labelStyle.Render("dt trace") + SparklineChart(dts, 40) + "\n")
	}

	if len(m.history) > 0 {
		last := m.history[len(m.history)-1]
		s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4f", last.Time)) + "\n")
		s.WriteString(labelStyle.Render("Timestep") + valueStyle.Render(fmt.Sprintf("%.3e", last.Dt)) + "\n")
		s.WriteString(labelStyle.Render("Order") + valueStyle.Render(fmt.Sprintf("%d", last.Order)) + "\n")
		s.WriteString(labelStyle.Render("Samples") + valueStyle.Render(fmt.Sprintf("%d", len(m.history))) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause C:Component Q:Quit"))
	return s.String()
}

// RunLive drives an initialized problem through the solver while
// rendering output-boundary samples in a Bubble Tea program.
func RunLive(problemName string, slv ode.Solver, nout int, tstep float64) error {
	if err := slv.Init(nout, tstep); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan Sample, 256)
	slv.AddMonitor(func(simtime float64, iter, nout int) error {
		smp := Sample{
			Time:  simtime,
			State: slv.State(),
			Dt:    slv.CurrentTimestep(),
			Order: slv.Stats().Order,
		}
		select {
		case ch <- smp:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}, ode.MonitorBack)

	errc := make(chan error, 1)
	go func() {
		errc <- slv.Run(ctx)
		close(ch)
	}()

	p := tea.NewProgram(NewModel(problemName, ch, cancel))
	if _, err := p.Run(); err != nil {
		cancel()
		<-errc
		return err
	}
	cancel()

	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
