package pipeline

import "github.com/ridemate/plateid/internal/model"

// GateDecision is the confidence gate's verdict on a detection record.
type GateDecision struct {
	Proceed bool
	// PlateText is set only when Proceed is true.
	PlateText string
	// Reject is the rejection outcome kind when Proceed is false: either
	// OutcomeRejectedNotAPlate or OutcomeRejectedLowConfidence.
	Reject model.OutcomeKind
	Reason string
}

// Gate applies the acceptance policy to a detection record. Precedence is
// fixed: not-a-plate wins over any confidence level, and a missing plate
// text folds into the low-confidence path — the service may legitimately
// report a plate it could not read.
func Gate(rec model.DetectionRecord) GateDecision {
	if !rec.IsPlate {
		return GateDecision{
			Reject: model.OutcomeRejectedNotAPlate,
			Reason: reasonOr(rec.Reason, "image does not show a license plate"),
		}
	}
	if rec.Confidence == model.ConfidenceLow {
		return GateDecision{
			Reject: model.OutcomeRejectedLowConfidence,
			Reason: reasonOr(rec.Reason, "detection confidence too low"),
		}
	}
	if !rec.HasPlateText {
		return GateDecision{
			Reject: model.OutcomeRejectedLowConfidence,
			Reason: reasonOr(rec.Reason, "plate detected but no legible text"),
		}
	}
	return GateDecision{Proceed: true, PlateText: rec.PlateText}
}

func reasonOr(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}
