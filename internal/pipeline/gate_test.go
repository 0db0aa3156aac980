package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ridemate/plateid/internal/model"
)

func TestGate_NotAPlateWinsOverConfidenceAndText(t *testing.T) {
	decision := Gate(model.DetectionRecord{
		IsPlate:      false,
		PlateText:    "51A-12345",
		HasPlateText: true,
		Confidence:   model.ConfidenceHigh,
	})

	assert.False(t, decision.Proceed)
	assert.Equal(t, model.OutcomeRejectedNotAPlate, decision.Reject)
}

func TestGate_LowConfidenceRejectedEvenWithText(t *testing.T) {
	decision := Gate(model.DetectionRecord{
		IsPlate:      true,
		PlateText:    "51A-12345",
		HasPlateText: true,
		Confidence:   model.ConfidenceLow,
	})

	assert.False(t, decision.Proceed)
	assert.Equal(t, model.OutcomeRejectedLowConfidence, decision.Reject)
}

func TestGate_MissingTextFoldsIntoLowConfidence(t *testing.T) {
	decision := Gate(model.DetectionRecord{
		IsPlate:    true,
		Confidence: model.ConfidenceHigh,
	})

	assert.False(t, decision.Proceed)
	assert.Equal(t, model.OutcomeRejectedLowConfidence, decision.Reject)
	assert.Equal(t, "plate detected but no legible text", decision.Reason)
}

func TestGate_Proceeds(t *testing.T) {
	for _, confidence := range []model.Confidence{model.ConfidenceHigh, model.ConfidenceMedium} {
		decision := Gate(model.DetectionRecord{
			IsPlate:      true,
			PlateText:    "51A-12345",
			HasPlateText: true,
			Confidence:   confidence,
		})

		assert.True(t, decision.Proceed, "confidence %s", confidence)
		assert.Equal(t, "51A-12345", decision.PlateText)
	}
}

func TestGate_ServiceReasonPreferred(t *testing.T) {
	decision := Gate(model.DetectionRecord{
		IsPlate:    false,
		Confidence: model.ConfidenceHigh,
		Reason:     "photo shows a street sign",
	})

	assert.Equal(t, "photo shows a street sign", decision.Reason)
}
