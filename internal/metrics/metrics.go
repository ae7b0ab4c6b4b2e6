package metrics

import (
	"github.com/askeland/multistep/internal/ode"
)

// Metric observes the accepted-step stream of a run.
type Metric interface {
	Name() string
	Observe(x ode.State, t, dt float64, order int)
	Value() float64
	Reset()
}

type MeanStepSize struct {
	name    string
	totalDt float64
	samples int
}

func NewMeanStepSize() *MeanStepSize {
	return &MeanStepSize{name: "mean_step_size"}
}

func (m *MeanStepSize) Name() string { return m.name }

func (m *MeanStepSize) Observe(x ode.State, t, dt float64, order int) {
	m.totalDt += dt
	m.samples++
}

func (m *MeanStepSize) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.totalDt / float64(m.samples)
}

func (m *MeanStepSize) Reset() {
	m.totalDt = 0
	m.samples = 0
}

type MaxOrder struct {
	name string
	max  int
}

func NewMaxOrder() *MaxOrder {
	return &MaxOrder{name: "max_order"}
}

func (m *MaxOrder) Name() string { return m.name }

func (m *MaxOrder) Observe(x ode.State, t, dt float64, order int) {
	if order > m.max {
		m.max = order
	}
}

func (m *MaxOrder) Value() float64 { return float64(m.max) }

func (m *MaxOrder) Reset() { m.max = 0 }
