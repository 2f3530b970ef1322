package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditEvent_Category(t *testing.T) {
	tests := []struct {
		event    AuditEvent
		expected EventCategory
	}{
		{EventApplicationSubmitted, CategoryCompliance},
		{EventPEPDeclared, CategoryCompliance},
		{EventTermsAccepted, CategoryCompliance},
		{EventOnboardingCompleted, CategoryCompliance},
		{EventCredentialsRegistered, CategorySecurity},
		{EventSessionStarted, CategoryOperations},
		{AuditEvent("something_new"), CategoryOperations},
	}

	for _, tt := range tests {
		t.Run(string(tt.event), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Category())
		})
	}
}
