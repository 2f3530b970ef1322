package service

import (
	"onboarding/internal/onboarding/steps"
)

// Timings configures every simulated-async step.
type Timings struct {
	Countdown steps.CountdownConfig
	Progress  steps.ProgressConfig
	Capture   steps.CaptureConfig
	Scan      steps.ScanConfig
}

func DefaultTimings() Timings {
	return Timings{
		Countdown: steps.DefaultCountdownConfig(),
		Progress:  steps.DefaultProgressConfig(),
		Capture:   steps.DefaultCaptureConfig(),
		Scan:      steps.DefaultScanConfig(),
	}
}
