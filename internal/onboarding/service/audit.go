package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"onboarding/internal/onboarding/models"
	id "onboarding/pkg/domain"
	"onboarding/pkg/email"
	"onboarding/pkg/platform/audit"
	"onboarding/pkg/requestcontext"
)

func (c *Controller) emitSessionStarted(ctx context.Context) {
	c.emit(ctx, audit.EventSessionStarted, audit.Event{
		Decision: c.session.Variant.String(),
	})
}

// emitApplicationSubmitted records the application and every consent the
// form carried.
func (c *Controller) emitApplicationSubmitted(ctx context.Context, form models.ApplicationForm) {
	c.emit(ctx, audit.EventApplicationSubmitted, audit.Event{
		Subject:       email.Mask(strings.TrimSpace(form.Basic.Email)),
		SubjectIDHash: hashIDNumber(form.Basic.IDNumber),
		Reason:        string(form.Basic.DocumentType),
	})

	if c.session.Variant == models.VariantExtended {
		if form.Financial.AcceptDataTreatment {
			c.emitTermsAccepted(ctx, id.ConsentPurposeDataTreatment)
		}
		if form.Financial.AcceptTerms {
			c.emitTermsAccepted(ctx, id.ConsentPurposeTermsConditions)
		}
		return
	}
	if form.Basic.AcceptTerms {
		c.emitTermsAccepted(ctx, id.ConsentPurposePrivacyPolicy)
	}
}

func (c *Controller) emitPEPDeclared(ctx context.Context, status models.PEPStatus) {
	c.emit(ctx, audit.EventPEPDeclared, audit.Event{
		SubjectIDHash: hashIDNumber(c.session.BasicInfo.IDNumber),
		Decision:      status.String(),
	})
}

func (c *Controller) emitTermsAccepted(ctx context.Context, purpose id.ConsentPurpose) {
	c.emit(ctx, audit.EventTermsAccepted, audit.Event{
		SubjectIDHash: hashIDNumber(c.session.BasicInfo.IDNumber),
		Purpose:       purpose.String(),
	})
}

func (c *Controller) emitCredentialsRegistered(ctx context.Context) {
	c.emit(ctx, audit.EventCredentialsRegistered, audit.Event{
		SubjectIDHash: hashIDNumber(c.session.BasicInfo.IDNumber),
	})
}

func (c *Controller) emitOnboardingCompleted(ctx context.Context) {
	event := audit.Event{
		SubjectIDHash: hashIDNumber(c.session.BasicInfo.IDNumber),
		Decision:      c.session.Variant.String(),
	}
	if c.session.Variant == models.VariantExtended {
		event.Reason = c.portalURI
	}
	c.emit(ctx, audit.EventOnboardingCompleted, event)
}

// emit fills the common fields and publishes. Failures are logged and never
// block the flow.
func (c *Controller) emit(ctx context.Context, action audit.AuditEvent, event audit.Event) {
	if c.auditPublisher == nil {
		return
	}
	event.Action = string(action)
	event.Category = action.Category()
	event.SessionID = c.sessionID
	event.Timestamp = c.now()
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if err := c.auditPublisher.Emit(ctx, event); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(action),
			"session_id", c.sessionID.String(),
			"error", err,
		)
	}
}

// hashIDNumber returns the hex SHA-256 of a national ID number, or "" when
// none has been collected.
func hashIDNumber(idNumber string) string {
	idNumber = strings.TrimSpace(idNumber)
	if idNumber == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(idNumber))
	return hex.EncodeToString(sum[:])
}
