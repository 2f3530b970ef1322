// Command walkthrough drives one scripted onboarding session and prints the
// screens visited, the audit trail and the flow metrics.
//
// Configuration comes from the environment (see internal/platform/config).
// ONBOARDING_CLOCK=virtual runs instantly on a manual clock; real runs the
// controller on an event loop with wall-clock timers.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"onboarding/internal/onboarding/metrics"
	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/service"
	"onboarding/internal/onboarding/validation"
	"onboarding/internal/platform/config"
	"onboarding/internal/platform/logger"
	id "onboarding/pkg/domain"
	"onboarding/pkg/platform/audit"
	"onboarding/pkg/platform/audit/publisher"
	"onboarding/pkg/platform/audit/store/memory"
	"onboarding/pkg/platform/timer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "walkthrough:", err)
		os.Exit(2)
	}
	if err := walk(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "walkthrough:", err)
		os.Exit(1)
	}
}

// walk runs one session with cfg, writing the report to out and logs to
// logOut.
func walk(ctx context.Context, cfg *config.Config, out, logOut io.Writer) error {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	store := memory.NewInMemoryStore()
	pub := publisher.NewPublisher(store,
		publisher.WithAsyncBuffer(cfg.AuditBuffer),
		publisher.WithLogger(log),
	)

	sessionID := id.NewSessionID()
	opts := []service.Option{
		service.WithSessionID(sessionID),
		service.WithLogger(log),
		service.WithMetrics(metrics.New(registry)),
		service.WithAuditPublisher(pub),
		service.WithTimings(cfg.Timings.ToService()),
		service.WithPortalURI(cfg.PortalURI),
		service.WithAccountNumber(cfg.AccountNumber),
		service.WithRegistrationPolicy(validation.RegistrationPolicy{
			ForbidIDNumberUsername: cfg.EnforceUsernameNotID,
		}),
	}

	printf := func(format string, args ...any) { fmt.Fprintf(out, format, args...) }
	printf("session %s (%s variant, %s clock)\n", sessionID, cfg.Variant, cfg.Clock)

	started := time.Now()
	var final service.Result
	if cfg.Clock == config.ClockReal {
		final, err = walkLoop(ctx, cfg.Variant, opts, printf)
	} else {
		final, err = walkVirtual(ctx, cfg.Variant, opts, printf)
	}
	// Close drains the async audit queue before the trail is read.
	pub.Close()
	if err != nil {
		return err
	}

	printf("finished %s on %s", final.Outcome, final.Screen)
	if final.Destination != "" {
		printf(", continue at %s", final.Destination)
	}
	printf(" in %s\n", time.Since(started).Round(time.Millisecond))

	events, err := store.ListBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	printAudit(printf, events)
	return printMetrics(printf, registry)
}

func walkVirtual(ctx context.Context, variant models.Variant, opts []service.Option, printf func(string, ...any)) (service.Result, error) {
	clock := timer.NewManual(time.Now())
	c, err := service.New(variant, clock, opts...)
	if err != nil {
		return service.Result{}, err
	}
	defer c.Close()
	return play(ctx, &virtualDriver{clock: clock, c: c, limit: 10000}, scriptFor(variant), printf)
}

func walkLoop(parent context.Context, variant models.Variant, opts []service.Option, printf func(string, ...any)) (service.Result, error) {
	loop := timer.NewLoop(64)
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})

	var final service.Result
	g.Go(func() error {
		defer cancel()
		var (
			c      *service.Controller
			newErr error
		)
		if err := loop.Call(gctx, func() { c, newErr = service.New(variant, loop, opts...) }); err != nil {
			return err
		}
		if newErr != nil {
			return newErr
		}
		defer func() { _ = loop.Call(gctx, c.Close) }()

		d := &loopDriver{loop: loop, c: c, poll: 5 * time.Millisecond, timeout: 30 * time.Second}
		var err error
		final, err = play(gctx, d, scriptFor(variant), printf)
		return err
	})

	// The loop always stops with context.Canceled once the script is done.
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return final, err
	}
	return final, parent.Err()
}

func printAudit(printf func(string, ...any), events []audit.Event) {
	printf("\naudit trail (%d events)\n", len(events))
	for _, e := range events {
		detail := e.Purpose
		if detail == "" {
			detail = e.Decision
		}
		requestID := e.RequestID
		if requestID == "" {
			requestID = "-"
		}
		printf("  %-6s %-11s %-24s %s\n", requestID, e.Category, e.Action, detail)
	}
}

// printMetrics prints every non-zero counter and histogram series.
func printMetrics(printf func(string, ...any), registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			series := mf.GetName() + "{" + strings.Join(labels, ",") + "}"
			switch {
			case m.GetCounter() != nil && m.GetCounter().GetValue() > 0:
				lines = append(lines, fmt.Sprintf("%s %s", series, humanize.Ftoa(m.GetCounter().GetValue())))
			case m.GetHistogram() != nil && m.GetHistogram().GetSampleCount() > 0:
				lines = append(lines, fmt.Sprintf("%s count=%d", series, m.GetHistogram().GetSampleCount()))
			}
		}
	}
	sort.Strings(lines)
	printf("\nmetrics\n")
	for _, line := range lines {
		printf("  %s\n", line)
	}
	return nil
}
