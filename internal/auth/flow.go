package auth

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/shared"
)

// FlowState enumerates the phases of a single authorization attempt.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowAwaitingConsent
	FlowExchangingCode
	FlowComplete
	FlowFailed
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowAwaitingConsent:
		return "awaiting_consent"
	case FlowExchangingCode:
		return "exchanging_code"
	case FlowComplete:
		return "complete"
	case FlowFailed:
		return "failed"
	default:
		return ""
	}
}

// Consenter drives the external user-consent step: it presents the
// authorization URL to the user and resolves with the redirect URL once
// the provider redirects back, or with an error on cancellation/denial.
type Consenter interface {
	Consent(ctx context.Context, authURL, state string) (string, error)
}

// Exchanger is the subset of the tracking client the flow needs.
type Exchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (models.TokenPair, error)
}

// Flow drives the OAuth authorization-code exchange:
// Idle → AwaitingConsent → ExchangingCode → Complete, with any step able
// to land in Failed. A Flow runs at most one authorization at a time; a
// concurrent Authorize call is rejected.
type Flow struct {
	svc     Exchanger
	consent Consenter
	logger  *log.Logger

	mu      sync.Mutex
	state   FlowState
	running atomic.Bool
}

// NewFlow creates an idle authorization flow.
func NewFlow(svc Exchanger, consent Consenter, logger *log.Logger) *Flow {
	return &Flow{svc: svc, consent: consent, logger: logger}
}

// State returns the current flow state.
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s FlowState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Authorize runs the full authorization-code flow and returns the token
// pair. No state is persisted here; the caller hands the pair to the
// session manager.
func (f *Flow) Authorize(ctx context.Context) (models.TokenPair, error) {
	if !f.running.CompareAndSwap(false, true) {
		return models.TokenPair{}, shared.ErrFlowInProgress
	}
	defer f.running.Store(false)

	state := shared.GenerateState()
	authURL := f.svc.AuthCodeURL(state)

	f.setState(FlowAwaitingConsent)
	if f.logger != nil {
		f.logger.Debug("awaiting user consent", "url", authURL)
	}

	redirectURL, err := f.consent.Consent(ctx, authURL, state)
	if err != nil {
		f.setState(FlowFailed)
		return models.TokenPair{}, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	code, err := parseCode(redirectURL)
	if err != nil {
		f.setState(FlowFailed)
		return models.TokenPair{}, err
	}

	f.setState(FlowExchangingCode)

	pair, err := f.svc.Exchange(ctx, code)
	if err != nil {
		f.setState(FlowFailed)
		return models.TokenPair{}, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	f.setState(FlowComplete)
	return pair, nil
}

// parseCode extracts the authorization code from the redirect URL's query.
func parseCode(redirectURL string) (string, error) {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid redirect URL: %v", shared.ErrAuthFailed, err)
	}

	code := parsed.Query().Get("code")
	if code == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrAuthFailed, shared.ErrMissingCode)
	}

	return code, nil
}
