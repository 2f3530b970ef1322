package steps

import (
	"time"
)

type PhaseStatus string

const (
	PhasePending    PhaseStatus = "pending"
	PhaseProcessing PhaseStatus = "processing"
	PhaseCompleted  PhaseStatus = "completed"
)

// Phase is one row of the processing checklist.
type Phase struct {
	Title  string
	Status PhaseStatus
}

type ProgressConfig struct {
	Tick  time.Duration
	Step  int
	Grace time.Duration
	// Phases are the checklist titles. The first starts completed, the
	// second processing, the rest pending.
	Phases []string
	// Thresholds[i] completes phase i+1 and starts phase i+2.
	Thresholds []int
}

func DefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		Tick:  150 * time.Millisecond,
		Step:  2,
		Grace: time.Second,
		Phases: []string{
			"Validación de datos",
			"Consultas listas restrictivas",
			"Generación enlace biometría",
		},
		Thresholds: []int{25, 50},
	}
}

// Progress drives the processing screen from 0 to 100 percent and fires
// onComplete exactly once, Grace after reaching 100.
type Progress struct {
	clock      Clock
	cfg        ProgressConfig
	onComplete func()

	value    int
	phases   []Phase
	reached  int
	finished bool
	done     bool
}

func NewProgress(clock Clock, cfg ProgressConfig, onComplete func()) *Progress {
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	p := &Progress{clock: clock, cfg: cfg, onComplete: onComplete}
	p.reset()
	return p
}

func (p *Progress) reset() {
	p.value = 0
	p.reached = 0
	p.finished = false
	p.done = false
	p.phases = make([]Phase, len(p.cfg.Phases))
	for i, title := range p.cfg.Phases {
		status := PhasePending
		switch i {
		case 0:
			status = PhaseCompleted
		case 1:
			status = PhaseProcessing
		}
		p.phases[i] = Phase{Title: title, Status: status}
	}
}

// Start begins ticking from zero.
func (p *Progress) Start() error {
	p.clock.Cancel()
	p.reset()
	_, err := p.clock.Schedule(p.cfg.Tick, p.tick)
	return err
}

func (p *Progress) Value() int {
	return p.value
}

func (p *Progress) Phases() []Phase {
	return append([]Phase(nil), p.phases...)
}

// Done reports whether the completion signal has fired.
func (p *Progress) Done() bool {
	return p.done
}

func (p *Progress) tick() {
	if p.finished {
		return
	}
	p.value += p.cfg.Step
	for p.reached < len(p.cfg.Thresholds) && p.value >= p.cfg.Thresholds[p.reached] {
		p.setStatus(p.reached+1, PhaseCompleted)
		p.setStatus(p.reached+2, PhaseProcessing)
		p.reached++
	}
	if p.value < 100 {
		_, _ = p.clock.Schedule(p.cfg.Tick, p.tick)
		return
	}

	p.value = 100
	p.finished = true
	for i := range p.phases {
		p.phases[i].Status = PhaseCompleted
	}
	_, _ = p.clock.Schedule(p.cfg.Grace, p.complete)
}

func (p *Progress) complete() {
	if p.done {
		return
	}
	p.done = true
	if p.onComplete != nil {
		p.onComplete()
	}
}

func (p *Progress) setStatus(i int, status PhaseStatus) {
	if i >= 0 && i < len(p.phases) {
		p.phases[i].Status = status
	}
}
