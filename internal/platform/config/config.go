package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/service"
	"onboarding/internal/onboarding/steps"
	dErrors "onboarding/pkg/domain-errors"
)

// Clock modes for the walkthrough host.
const (
	ClockVirtual = "virtual"
	ClockReal    = "real"
)

// Config is the process configuration. Every field has a default, so an
// empty environment yields the stock flow.
type Config struct {
	Variant   models.Variant `env:"ONBOARDING_VARIANT, default=base"`
	LogLevel  string         `env:"LOG_LEVEL,          default=info"`
	LogFormat string         `env:"LOG_FORMAT,         default=text"`
	Clock     string         `env:"ONBOARDING_CLOCK,   default=virtual"`

	PortalURI            string `env:"ONBOARDING_PORTAL_URI,              default=https://banca.example.com/"`
	AccountNumber        string `env:"ONBOARDING_ACCOUNT_NUMBER,          default=4000-1234-5678-9012"`
	EnforceUsernameNotID bool   `env:"ONBOARDING_ENFORCE_USERNAME_NOT_ID, default=false"`
	AuditBuffer          int    `env:"AUDIT_BUFFER,                       default=64"`

	Timings Timings
}

// Timings mirrors service.Timings as flat environment variables.
type Timings struct {
	CountdownStart int           `env:"COUNTDOWN_START, default=60"`
	CountdownTick  time.Duration `env:"COUNTDOWN_TICK,  default=1s"`
	ProgressTick   time.Duration `env:"PROGRESS_TICK,   default=150ms"`
	ProgressStep   int           `env:"PROGRESS_STEP,   default=2"`
	ProgressGrace  time.Duration `env:"PROGRESS_GRACE,  default=1s"`
	CaptureDelay   time.Duration `env:"CAPTURE_DELAY,   default=2s"`
	ConfirmDelay   time.Duration `env:"CONFIRM_DELAY,   default=1500ms"`
	ScanDuration   time.Duration `env:"SCAN_DURATION,   default=3s"`
	// ProgressPhases replaces the processing checklist when set, e.g.
	// "Validación de datos,Consultas listas restrictivas,Generación enlace biometría,Activación de cuenta".
	ProgressPhases []string `env:"PROGRESS_PHASES"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "failed to load configuration")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !c.Variant.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown variant %q", c.Variant))
	}
	if c.Clock != ClockVirtual && c.Clock != ClockReal {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown clock %q", c.Clock))
	}
	if c.AuditBuffer < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "audit buffer must not be negative")
	}
	return c.Timings.validate()
}

func (t Timings) validate() error {
	durations := map[string]time.Duration{
		"COUNTDOWN_TICK": t.CountdownTick,
		"PROGRESS_TICK":  t.ProgressTick,
		"CAPTURE_DELAY":  t.CaptureDelay,
		"CONFIRM_DELAY":  t.ConfirmDelay,
		"SCAN_DURATION":  t.ScanDuration,
	}
	for name, d := range durations {
		if d <= 0 {
			return dErrors.New(dErrors.CodeInvalidInput, name+" must be positive")
		}
	}
	if t.ProgressGrace < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "PROGRESS_GRACE must not be negative")
	}
	if t.CountdownStart < 0 || t.ProgressStep <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "countdown start and progress step must be positive")
	}
	if n := len(t.ProgressPhases); n != 0 && (n < 3 || n > 4) {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("PROGRESS_PHASES needs 3 or 4 titles, got %d", n))
	}
	for _, title := range t.ProgressPhases {
		if strings.TrimSpace(title) == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "PROGRESS_PHASES has a blank title")
		}
	}
	return nil
}

// ToService maps the flat timings onto each sub-machine config. Progress
// keeps the stock phase checklist unless PROGRESS_PHASES is set.
func (t Timings) ToService() service.Timings {
	progress := steps.DefaultProgressConfig()
	progress.Tick = t.ProgressTick
	progress.Step = t.ProgressStep
	progress.Grace = t.ProgressGrace
	if len(t.ProgressPhases) > 0 {
		progress.Phases = make([]string, len(t.ProgressPhases))
		for i, title := range t.ProgressPhases {
			progress.Phases[i] = strings.TrimSpace(title)
		}
	}
	return service.Timings{
		Countdown: steps.CountdownConfig{Start: t.CountdownStart, Tick: t.CountdownTick},
		Progress:  progress,
		Capture:   steps.CaptureConfig{CaptureDelay: t.CaptureDelay, ConfirmDelay: t.ConfirmDelay},
		Scan:      steps.ScanConfig{Duration: t.ScanDuration},
	}
}
