package steps

import (
	"time"
)

type ScanConfig struct {
	Duration time.Duration
}

func DefaultScanConfig() ScanConfig {
	return ScanConfig{Duration: 3 * time.Second}
}

// Scan is the biometric toggle: idle --start--> scanning --timer--> idle.
// The timer firing also raises onComplete.
type Scan struct {
	clock      Clock
	cfg        ScanConfig
	onComplete func()
	scanning   bool
	completed  int
}

func NewScan(clock Clock, cfg ScanConfig, onComplete func()) *Scan {
	return &Scan{clock: clock, cfg: cfg, onComplete: onComplete}
}

// Start begins a scan. Starting while one is in flight is a no-op.
func (s *Scan) Start() bool {
	if s.scanning {
		return false
	}
	if _, err := s.clock.Schedule(s.cfg.Duration, s.finish); err != nil {
		return false
	}
	s.scanning = true
	return true
}

func (s *Scan) Scanning() bool {
	return s.scanning
}

// Completed counts finished scans.
func (s *Scan) Completed() int {
	return s.completed
}

func (s *Scan) finish() {
	s.scanning = false
	s.completed++
	if s.onComplete != nil {
		s.onComplete()
	}
}
