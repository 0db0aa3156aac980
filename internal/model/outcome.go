package model

// OutcomeKind tags the closed set of terminal results a caller can receive
// from one recognition attempt.
type OutcomeKind string

const (
	OutcomeAccepted              OutcomeKind = "accepted"
	OutcomeRejectedNotAPlate     OutcomeKind = "rejected_not_a_plate"
	OutcomeRejectedLowConfidence OutcomeKind = "rejected_low_confidence"
	OutcomeRejectedUnreadable    OutcomeKind = "rejected_unreadable"
	OutcomeTransportFailure      OutcomeKind = "transport_failure"
	OutcomeMalformedResponse     OutcomeKind = "malformed_response"
	OutcomeUnreadableImage       OutcomeKind = "unreadable_image"
)

// TransportKind distinguishes transport failures the caller should surface
// differently: quota exhaustion ("try again shortly") is not the same user
// problem as a misconfigured key or a flaky network.
type TransportKind string

const (
	TransportQuota        TransportKind = "quota"
	TransportUnauthorized TransportKind = "unauthorized"
	TransportNetwork      TransportKind = "network"
)

// Outcome is the single result type of a pipeline run. Exactly the fields
// relevant to its Kind are populated; everything else is zero.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Accepted only.
	Plate      *CanonicalPlate `json:"plate,omitempty"`
	Confidence Confidence      `json:"confidence,omitempty"`

	// Rejection variants.
	Reason string `json:"reason,omitempty"`

	// Transport failures.
	Transport TransportKind `json:"transport,omitempty"`
	Cause     string        `json:"cause,omitempty"`

	// Malformed responses keep the raw service text for diagnosis.
	RawText string `json:"raw_text,omitempty"`
}

// Accepted builds the success outcome.
func Accepted(plate CanonicalPlate, confidence Confidence) Outcome {
	return Outcome{Kind: OutcomeAccepted, Plate: &plate, Confidence: confidence}
}

// RejectedNotAPlate builds the "service saw no plate" outcome.
func RejectedNotAPlate(reason string) Outcome {
	return Outcome{Kind: OutcomeRejectedNotAPlate, Reason: reason}
}

// RejectedLowConfidence builds the "detection not trusted" outcome.
func RejectedLowConfidence(reason string) Outcome {
	return Outcome{Kind: OutcomeRejectedLowConfidence, Reason: reason}
}

// RejectedUnreadable builds the "text does not fit the plate grammar" outcome.
func RejectedUnreadable(reason string) Outcome {
	return Outcome{Kind: OutcomeRejectedUnreadable, Reason: reason}
}

// TransportFailure builds a transport outcome with its sub-kind.
func TransportFailure(kind TransportKind, cause error) Outcome {
	o := Outcome{Kind: OutcomeTransportFailure, Transport: kind}
	if cause != nil {
		o.Cause = cause.Error()
	}
	return o
}

// MalformedResponse builds the "service answered outside the schema" outcome.
func MalformedResponse(rawText string) Outcome {
	return Outcome{Kind: OutcomeMalformedResponse, RawText: rawText}
}

// UnreadableImage builds the "source image could not be read" outcome.
func UnreadableImage(cause error) Outcome {
	o := Outcome{Kind: OutcomeUnreadableImage}
	if cause != nil {
		o.Cause = cause.Error()
	}
	return o
}

// Retryable reports whether resubmitting is worthwhile for this outcome.
// Not-a-plate and unreadable-plate are terminal for the image; an
// unauthorized transport failure is terminal for the deployment.
func (o Outcome) Retryable() bool {
	switch o.Kind {
	case OutcomeTransportFailure:
		return o.Transport != TransportUnauthorized
	case OutcomeMalformedResponse, OutcomeRejectedLowConfidence:
		return true
	default:
		return false
	}
}
