package flow

import (
	"log/slog"

	"github.com/robbyt/go-fsm"

	"onboarding/internal/onboarding/models"
	dErrors "onboarding/pkg/domain-errors"
)

// ErrInvalidStateTransition is returned by Graph.Move for an edge the
// variant does not have.
var ErrInvalidStateTransition = fsm.ErrInvalidStateTransition

var baseTransitions = map[string][]string{
	string(models.ScreenLanding):             {string(models.ScreenProductInfo)},
	string(models.ScreenProductInfo):         {string(models.ScreenLanding), string(models.ScreenDataForm)},
	string(models.ScreenDataForm):            {string(models.ScreenProductInfo), string(models.ScreenOTPValidation)},
	string(models.ScreenOTPValidation):       {string(models.ScreenOnboardingProcess)},
	string(models.ScreenOnboardingProcess):   {string(models.ScreenBiometricValidation)},
	string(models.ScreenBiometricValidation): {string(models.ScreenTermsConditions)},
	string(models.ScreenTermsConditions):     {string(models.ScreenAccountSuccess)},
	string(models.ScreenAccountSuccess):      {}, // terminal
}

var extendedTransitions = map[string][]string{
	string(models.ScreenLanding):             {string(models.ScreenProductInfo)},
	string(models.ScreenProductInfo):         {string(models.ScreenLanding), string(models.ScreenDataForm)},
	string(models.ScreenDataForm):            {string(models.ScreenProductInfo), string(models.ScreenOTPValidation)},
	string(models.ScreenOTPValidation):       {string(models.ScreenPEPValidation)},
	string(models.ScreenPEPValidation):       {string(models.ScreenOTPValidation), string(models.ScreenOnboardingProcess)},
	string(models.ScreenOnboardingProcess):   {string(models.ScreenDocumentCapture)},
	string(models.ScreenDocumentCapture):     {string(models.ScreenOnboardingProcess), string(models.ScreenBiometricValidation)},
	string(models.ScreenBiometricValidation): {string(models.ScreenTermsConditions)},
	string(models.ScreenTermsConditions):     {string(models.ScreenAccountSuccess)},
	string(models.ScreenAccountSuccess):      {string(models.ScreenUserRegistration)},
	string(models.ScreenUserRegistration):    {string(models.ScreenAccountSuccess)},
}

// Transitions returns the screen adjacency of variant.
func Transitions(variant models.Variant) map[string][]string {
	src := baseTransitions
	if variant == models.VariantExtended {
		src = extendedTransitions
	}
	out := make(map[string][]string, len(src))
	for from, to := range src {
		out[from] = append([]string{}, to...)
	}
	return out
}

// Allows reports whether variant has an edge from one screen to another.
func Allows(variant models.Variant, from, to models.Screen) bool {
	for _, next := range Transitions(variant)[string(from)] {
		if next == string(to) {
			return true
		}
	}
	return false
}

// Graph tracks the current screen of one session and refuses moves along
// edges the variant does not have.
type Graph struct {
	machine *fsm.Machine
}

func NewGraph(variant models.Variant, handler slog.Handler) (*Graph, error) {
	if !variant.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid flow variant")
	}
	if handler == nil {
		handler = slog.DiscardHandler
	}
	machine, err := fsm.New(handler, string(models.ScreenLanding), Transitions(variant))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build screen graph")
	}
	return &Graph{machine: machine}, nil
}

// Move follows the edge to screen.
func (g *Graph) Move(to models.Screen) error {
	return g.machine.Transition(string(to))
}

func (g *Graph) Current() models.Screen {
	return models.Screen(g.machine.GetState())
}
