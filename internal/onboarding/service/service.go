// Package service implements the onboarding flow controller: it owns the
// Session, routes host events through the transition table, and runs the
// sub-machine of whichever screen is current.
//
// A Controller is single-threaded. Every call, and every timer callback of
// its Scheduler, must happen on one goroutine. With timer.Loop that is the
// loop goroutine; post host calls with Loop.Do or Loop.Call.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"onboarding/internal/onboarding/flow"
	"onboarding/internal/onboarding/metrics"
	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/steps"
	"onboarding/internal/onboarding/validation"
	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
	"onboarding/pkg/platform/audit"
	"onboarding/pkg/platform/timer"
	"onboarding/pkg/requestcontext"
)

const (
	DefaultPortalURI     = "https://banca.example.com/"
	DefaultAccountNumber = "4000-1234-5678-9012"
)

// AuditPublisher records compliance and security events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Result reports what Dispatch did. Destination is set when the host must
// hand off to an external URI.
type Result struct {
	Outcome     flow.Outcome
	Screen      models.Screen
	Reason      string
	Destination string
}

type Controller struct {
	sched          timer.Scheduler
	graph          *flow.Graph
	session        *models.Session
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher

	timings       Timings
	portalURI     string
	accountNumber string
	policy        validation.RegistrationPolicy
	sessionID     id.SessionID

	active *activation
	draft  models.ApplicationForm
	closed bool
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(c *Controller) {
		c.auditPublisher = publisher
	}
}

func WithTimings(t Timings) Option {
	return func(c *Controller) {
		c.timings = t
	}
}

// WithPortalURI sets the external home-banking destination.
func WithPortalURI(uri string) Option {
	return func(c *Controller) {
		c.portalURI = uri
	}
}

func WithAccountNumber(number string) Option {
	return func(c *Controller) {
		c.accountNumber = number
	}
}

func WithRegistrationPolicy(policy validation.RegistrationPolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// WithSessionID fixes the session ID instead of generating one.
func WithSessionID(sessionID id.SessionID) Option {
	return func(c *Controller) {
		c.sessionID = sessionID
	}
}

// New starts a session of variant on the landing screen.
func New(variant models.Variant, sched timer.Scheduler, opts ...Option) (*Controller, error) {
	if sched == nil {
		return nil, errors.New("scheduler is required")
	}
	if !variant.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid flow variant: "+string(variant))
	}

	c := &Controller{
		sched:         sched,
		timings:       DefaultTimings(),
		portalURI:     DefaultPortalURI,
		accountNumber: DefaultAccountNumber,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID.IsNil() {
		c.sessionID = id.NewSessionID()
	}

	var handler slog.Handler
	if c.logger != nil {
		handler = c.logger.Handler()
	}
	graph, err := flow.NewGraph(variant, handler)
	if err != nil {
		return nil, err
	}
	session, err := models.NewSession(c.sessionID, variant, sched.Now())
	if err != nil {
		return nil, err
	}
	c.graph = graph
	c.session = session

	c.activate(models.ScreenLanding)
	c.emitSessionStarted(context.Background())
	return c, nil
}

// Dispatch applies one host event. Events raised by sub-machines are
// rejected when they come from the host.
func (c *Controller) Dispatch(ctx context.Context, ev models.Event) Result {
	screen := c.session.CurrentScreen
	switch {
	case ev == nil:
		return Result{Outcome: flow.OutcomeIgnored, Screen: screen, Reason: "nil event"}
	case c.closed:
		return Result{Outcome: flow.OutcomeIgnored, Screen: screen, Reason: "controller closed"}
	case models.IsAuto(ev):
		c.logDebug(ctx, "auto event dispatched by host", "event", string(ev.Kind()), "screen", screen.String())
		return Result{Outcome: flow.OutcomeRejected, Screen: screen, Reason: string(ev.Kind()) + " is raised internally"}
	}
	return c.handle(requestcontext.WithSessionID(ctx, c.sessionID), ev)
}

// CanDispatch reports whether ev would currently be accepted. It drives the
// enabled state of the host's affordances and has no side effects.
func (c *Controller) CanDispatch(ev models.Event) bool {
	if ev == nil || c.closed || models.IsAuto(ev) {
		return false
	}
	d := flow.Next(c.session.CurrentScreen, ev, c.snapshot())
	switch d.Outcome {
	case flow.OutcomeAdvanced, flow.OutcomeHandled, flow.OutcomeExternal, flow.OutcomeCompleted:
		return true
	default:
		return false
	}
}

// Session returns a deep copy of the session.
func (c *Controller) Session() models.Session {
	return c.session.Clone()
}

func (c *Controller) Screen() models.Screen {
	return c.session.CurrentScreen
}

// Close cancels every in-flight timer. Later events are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.deactivate()
}

func (c *Controller) handle(ctx context.Context, ev models.Event) Result {
	from := c.session.CurrentScreen
	d := flow.Next(from, ev, c.snapshot())

	switch d.Outcome {
	case flow.OutcomeHandled:
		if !c.apply(ev) {
			return c.ignored(ctx, from, ev, "refused by "+from.String())
		}
		return Result{Outcome: flow.OutcomeHandled, Screen: from}
	case flow.OutcomeAdvanced:
		return c.advance(ctx, from, ev, d)
	case flow.OutcomeCompleted:
		return c.complete(ctx, from, ev, d)
	case flow.OutcomeExternal:
		c.logInfo(ctx, "external handoff",
			"session_id", c.sessionID.String(),
			"screen", from.String(),
			"event", string(ev.Kind()),
		)
		return Result{Outcome: flow.OutcomeExternal, Screen: from, Destination: c.portalURI}
	case flow.OutcomeRejected:
		c.metrics.IncrementGateRejection(from.String())
		c.keepDraft(ev)
		return Result{Outcome: flow.OutcomeRejected, Screen: from, Reason: d.Reason}
	default:
		return c.ignored(ctx, from, ev, d.Reason)
	}
}

func (c *Controller) advance(ctx context.Context, from models.Screen, ev models.Event, d flow.Decision) Result {
	if e, ok := ev.(models.DeclarePEP); ok {
		status, err := models.ParsePEPAnswer(e.Answer)
		if err == nil {
			err = c.session.CanDeclarePEP()
		}
		if err != nil {
			c.metrics.IncrementGateRejection(from.String())
			return Result{Outcome: flow.OutcomeRejected, Screen: from, Reason: err.Error()}
		}
		if err := c.move(ctx, from, d.To, ev); err != nil {
			return c.ignored(ctx, from, ev, err.Error())
		}
		c.session.ApplyPEPDeclaration(status)
		c.emitPEPDeclared(ctx, status)
		c.session.PassGate(d.Gate)
		return Result{Outcome: flow.OutcomeAdvanced, Screen: d.To}
	}

	if err := c.move(ctx, from, d.To, ev); err != nil {
		return c.ignored(ctx, from, ev, err.Error())
	}
	switch e := ev.(type) {
	case models.SubmitForm:
		form := validation.NormalizeAmounts(e.Form)
		c.draft = form
		c.session.ApplyApplication(form)
		c.emitApplicationSubmitted(ctx, form)
	case models.AcceptTerms:
		c.session.ApplyTermsAcceptance()
		c.emitTermsAccepted(ctx, id.ConsentPurposeAccountContract)
	}
	if d.Gate != "" {
		c.session.PassGate(d.Gate)
	}
	return Result{Outcome: flow.OutcomeAdvanced, Screen: d.To}
}

func (c *Controller) complete(ctx context.Context, from models.Screen, ev models.Event, d flow.Decision) Result {
	var creds *models.Credentials
	if e, ok := ev.(models.CompleteRegistration); ok {
		if err := c.session.CanRegisterCredentials(); err != nil {
			c.metrics.IncrementGateRejection(from.String())
			return Result{Outcome: flow.OutcomeRejected, Screen: from, Reason: err.Error()}
		}
		creds = &models.Credentials{Username: e.Form.Username, Password: e.Form.Password}
	}

	if d.To != from {
		if err := c.move(ctx, from, d.To, ev); err != nil {
			return c.ignored(ctx, from, ev, err.Error())
		}
	}
	if _, ok := ev.(models.AcceptTerms); ok {
		c.session.ApplyTermsAcceptance()
		c.emitTermsAccepted(ctx, id.ConsentPurposeAccountContract)
	}
	if d.Gate != "" {
		c.session.PassGate(d.Gate)
	}
	if creds != nil {
		c.session.ApplyCredentials(*creds)
		c.emitCredentialsRegistered(ctx)
	}

	if err := c.session.CanComplete(); err != nil {
		c.logError(ctx, "session completion refused", err)
		return c.ignored(ctx, d.To, ev, err.Error())
	}
	c.session.ApplyCompletion(c.sched.Now())
	c.metrics.IncrementSessionCompleted(c.session.Variant.String())
	c.emitOnboardingCompleted(ctx)
	c.logInfo(ctx, "onboarding completed",
		"session_id", c.sessionID.String(),
		"variant", c.session.Variant.String(),
		"screen", d.To.String(),
	)

	res := Result{Outcome: flow.OutcomeCompleted, Screen: d.To}
	if d.To == models.ScreenUserRegistration {
		c.deactivate()
		res.Destination = c.portalURI
	}
	return res
}

// move follows the graph edge, retires the current screen activation and
// activates the next screen.
func (c *Controller) move(ctx context.Context, from, to models.Screen, ev models.Event) error {
	if err := c.graph.Move(to); err != nil {
		c.logError(ctx, "screen graph refused transition", err, "from", from.String(), "to", to.String())
		return dErrors.Wrap(err, dErrors.CodeInternal, "transition "+from.String()+" -> "+to.String())
	}
	if err := c.session.MoveTo(to); err != nil {
		c.logError(ctx, "session refused screen", err, "to", to.String())
		return err
	}

	if c.active != nil {
		c.metrics.ObserveScreenDuration(from.String(), c.sched.Now().Sub(c.active.since))
	}
	c.deactivate()
	c.activate(to)

	c.metrics.IncrementTransition(from.String(), to.String())
	c.logInfo(ctx, "screen_changed",
		"session_id", c.sessionID.String(),
		"from", from.String(),
		"to", to.String(),
		"event", string(ev.Kind()),
	)
	return nil
}

func (c *Controller) ignored(ctx context.Context, screen models.Screen, ev models.Event, reason string) Result {
	c.metrics.IncrementIgnored(screen.String(), string(ev.Kind()))
	c.logDebug(ctx, "event ignored",
		"session_id", c.sessionID.String(),
		"screen", screen.String(),
		"event", string(ev.Kind()),
		"reason", reason,
	)
	return Result{Outcome: flow.OutcomeIgnored, Screen: c.session.CurrentScreen, Reason: reason}
}

// raise feeds an event from a sub-machine back into the flow.
func (c *Controller) raise(ev models.AutoEvent) {
	if c.closed {
		return
	}
	c.handle(context.Background(), ev)
}

// stale is called for timer callbacks that reach a screen no longer current.
func (c *Controller) stale() {
	c.metrics.IncrementStaleTimerFiring()
	c.logDebug(context.Background(), "stale timer firing discarded",
		"session_id", c.sessionID.String(),
		"screen", c.session.CurrentScreen.String(),
	)
}

func (c *Controller) now() time.Time {
	return c.sched.Now()
}

func (c *Controller) logInfo(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.InfoContext(ctx, msg, args...)
	}
}

func (c *Controller) logDebug(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.DebugContext(ctx, msg, args...)
	}
}

func (c *Controller) logError(ctx context.Context, msg string, err error, args ...any) {
	if c.logger != nil {
		c.logger.ErrorContext(ctx, msg, append(args, "error", err)...)
	}
}

// snapshot captures the guard inputs of the transition table.
func (c *Controller) snapshot() flow.Snapshot {
	snap := flow.Snapshot{
		Variant:   c.session.Variant,
		Completed: c.session.IsCompleted(),
		IDNumber:  c.session.BasicInfo.IDNumber,
		Policy:    c.policy,
		FormStep:  1,
		Capture:   steps.CaptureCamera,
	}
	a := c.active
	if a == nil {
		return snap
	}
	if a.wizard != nil {
		snap.FormStep = a.wizard.Step()
	}
	if a.countdown != nil {
		snap.ResendReady = a.countdown.Ready()
	}
	if a.capture != nil {
		snap.Capture = a.capture.State()
	}
	if a.scan != nil {
		snap.Scanning = a.scan.Scanning()
	}
	snap.TermsAtEnd = a.terms.Reached()
	return snap
}
