package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"onboarding/internal/onboarding/models"
	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

type SessionSuite struct {
	suite.Suite
	now time.Time
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
}

func (s *SessionSuite) newSession(variant models.Variant) *models.Session {
	session, err := models.NewSession(id.NewSessionID(), variant, s.now)
	s.Require().NoError(err)
	return session
}

func (s *SessionSuite) passAll(session *models.Session) {
	for _, g := range session.MissingGates() {
		session.PassGate(g)
	}
}

// =============================================================================
// Construction Invariants
// =============================================================================

func (s *SessionSuite) TestConstructionInvariants() {
	s.Run("rejects nil session id", func() {
		_, err := models.NewSession(id.SessionID{}, models.VariantBase, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects unknown variant", func() {
		_, err := models.NewSession(id.NewSessionID(), models.Variant("premium"), s.now)
		s.Require().Error(err)
		s.Contains(err.Error(), "variant")
	})

	s.Run("starts empty on landing", func() {
		session := s.newSession(models.VariantExtended)
		s.Equal(models.ScreenLanding, session.CurrentScreen)
		s.Equal(models.PEPUnknown, session.PEP)
		s.Nil(session.Credentials)
		s.Nil(session.FinancialInfo)
		s.False(session.IsCompleted())
		s.Equal(s.now, session.StartedAt)
	})
}

// =============================================================================
// Screen Movement
// =============================================================================

func (s *SessionSuite) TestMoveTo() {
	s.Run("rejects screens outside the variant", func() {
		session := s.newSession(models.VariantBase)
		err := session.MoveTo(models.ScreenPEPValidation)
		s.Require().Error(err)
		s.Equal(models.ScreenLanding, session.CurrentScreen)
	})

	s.Run("changes only the current screen", func() {
		session := s.newSession(models.VariantExtended)
		session.ApplyApplication(models.ApplicationForm{Basic: models.BasicInfo{IDNumber: "1020304050"}})
		s.Require().NoError(session.MoveTo(models.ScreenOTPValidation))
		s.Equal(models.ScreenOTPValidation, session.CurrentScreen)
		s.Equal("1020304050", session.BasicInfo.IDNumber)
	})
}

// =============================================================================
// Application Data
// =============================================================================

func (s *SessionSuite) TestApplyApplication() {
	form := models.ApplicationForm{
		Basic:     models.BasicInfo{FullName: "Ana Pérez", IDNumber: "1020304050"},
		Financial: models.FinancialInfo{Occupation: models.OccupationStudent},
	}

	s.Run("base variant drops financial info", func() {
		session := s.newSession(models.VariantBase)
		session.ApplyApplication(form)
		s.Equal("Ana Pérez", session.BasicInfo.FullName)
		s.Nil(session.FinancialInfo)
	})

	s.Run("extended variant keeps its own copy of financial info", func() {
		session := s.newSession(models.VariantExtended)
		local := form
		session.ApplyApplication(local)
		local.Financial.Occupation = models.OccupationRetired
		s.Require().NotNil(session.FinancialInfo)
		s.Equal(models.OccupationStudent, session.FinancialInfo.Occupation)
	})

	s.Run("re-submission replaces earlier values", func() {
		session := s.newSession(models.VariantBase)
		session.ApplyApplication(form)
		session.ApplyApplication(models.ApplicationForm{Basic: models.BasicInfo{FullName: "Ana P."}})
		s.Equal("Ana P.", session.BasicInfo.FullName)
	})
}

// =============================================================================
// PEP Declaration
// =============================================================================

func (s *SessionSuite) TestDeclarePEP() {
	s.Run("base variant has no pep step", func() {
		session := s.newSession(models.VariantBase)
		s.Error(session.CanDeclarePEP())
	})

	s.Run("rejects an undeclared status", func() {
		session := s.newSession(models.VariantExtended)
		err := session.DeclarePEP(models.PEPUnknown)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("is immutable once declared", func() {
		session := s.newSession(models.VariantExtended)
		s.Require().NoError(session.DeclarePEP(models.PEPYes))

		err := session.DeclarePEP(models.PEPNo)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(models.PEPYes, session.PEP)
	})
}

// =============================================================================
// Credentials
// =============================================================================

func (s *SessionSuite) TestRegisterCredentials() {
	creds := models.Credentials{Username: "abc123", Password: "abc12345"}

	s.Run("base variant never registers credentials", func() {
		session := s.newSession(models.VariantBase)
		s.passAll(session)
		s.Error(session.CanRegisterCredentials())
	})

	s.Run("requires every gate", func() {
		session := s.newSession(models.VariantExtended)
		session.PassGate(models.GateApplication)
		session.PassGate(models.GateOTP)

		err := session.CanRegisterCredentials()
		s.Require().Error(err)
		s.Contains(err.Error(), string(models.GatePEP))
	})

	s.Run("is write-once", func() {
		session := s.newSession(models.VariantExtended)
		s.passAll(session)
		s.Require().NoError(session.CanRegisterCredentials())
		session.ApplyCredentials(creds)

		err := session.CanRegisterCredentials()
		s.Require().Error(err)
		s.Contains(err.Error(), "already registered")
		s.Equal(creds, *session.Credentials)
	})
}

// =============================================================================
// Completion
// =============================================================================

func (s *SessionSuite) TestCompletion() {
	s.Run("only on the terminal screen", func() {
		session := s.newSession(models.VariantExtended)
		s.Require().NoError(session.MoveTo(models.ScreenAccountSuccess))
		s.Error(session.CanComplete())

		s.Require().NoError(session.MoveTo(models.ScreenUserRegistration))
		s.NoError(session.CanComplete())
	})

	s.Run("exactly once", func() {
		session := s.newSession(models.VariantBase)
		s.Require().NoError(session.MoveTo(models.ScreenAccountSuccess))
		s.Require().NoError(session.CanComplete())
		session.ApplyCompletion(s.now)

		s.True(session.IsCompleted())
		s.Error(session.CanComplete())
	})
}

// =============================================================================
// Clone
// =============================================================================

func (s *SessionSuite) TestClone() {
	session := s.newSession(models.VariantExtended)
	session.ApplyApplication(models.ApplicationForm{Financial: models.FinancialInfo{Company: "Acme"}})
	s.passAll(session)
	session.ApplyCredentials(models.Credentials{Username: "abc123", Password: "abc12345"})

	clone := session.Clone()
	clone.FinancialInfo.Company = "Other"
	clone.Credentials.Username = "zzz999"
	clone.PassGate(models.Gate("extra"))

	s.Equal("Acme", session.FinancialInfo.Company)
	s.Equal("abc123", session.Credentials.Username)
	s.False(session.Passed(models.Gate("extra")))
	s.True(clone.Passed(models.GateTerms))

	s.Run("read-only checks work on the returned copy", func() {
		s.Empty(session.Clone().MissingGates())
		s.False(session.Clone().IsCompleted())
		s.Error(session.Clone().CanRegisterCredentials(), "credentials already registered")
		s.Error(session.Clone().CanComplete(), "not on the terminal screen")
		s.NoError(session.Clone().CanDeclarePEP())
	})
}

func (s *SessionSuite) TestVariantGates() {
	s.Equal([]models.Gate{
		models.GateApplication, models.GateOTP, models.GateProcessing,
		models.GateBiometric, models.GateTerms,
	}, models.VariantBase.Gates())
	s.Len(models.VariantExtended.Gates(), 8)

	gates := models.VariantBase.Gates()
	gates[0] = models.Gate("changed")
	s.Equal(models.GateApplication, models.VariantBase.Gates()[0], "returns a copy")
}
