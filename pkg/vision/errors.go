package vision

import (
	"errors"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"go.uber.org/zap"

	"github.com/ridemate/plateid/internal/resilience"
)

// FailureKind splits transport failures into the sub-kinds callers surface
// differently: quota exhaustion is retryable after a delay, a bad credential
// is a deployment problem, everything else is generic network trouble.
type FailureKind string

const (
	FailureQuota        FailureKind = "quota"
	FailureUnauthorized FailureKind = "unauthorized"
	FailureNetwork      FailureKind = "network"
)

// TransportError is the only error type Recognize returns.
type TransportError struct {
	Kind FailureKind
	Err  error
}

func (e *TransportError) Error() string {
	return "vision: " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsTransport extracts a TransportError from an error chain.
func AsTransport(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// classify maps SDK and network errors onto the transport failure sub-kinds.
func classify(err error) *TransportError {
	var apierr *sdk.Error
	if errors.As(err, &apierr) {
		switch {
		case resilience.IsRateLimitStatus(apierr.StatusCode):
			return &TransportError{Kind: FailureQuota, Err: err}
		case resilience.IsAuthStatus(apierr.StatusCode):
			return &TransportError{Kind: FailureUnauthorized, Err: err}
		case apierr.StatusCode >= 400 && apierr.StatusCode < 500 && apierr.StatusCode != 408:
			// Other 4xx means the request itself is wrong: a deployment
			// problem, surfaced like a credential failure.
			return &TransportError{Kind: FailureUnauthorized, Err: err}
		}
	}
	// Timeouts, resets, DNS failures, and server errors all land in the
	// generic network kind.
	if apierr == nil && !resilience.IsTransient(err) {
		zap.L().Warn("vision: unclassified transport failure", zap.Error(err))
	}
	return &TransportError{Kind: FailureNetwork, Err: err}
}
