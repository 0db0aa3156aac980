package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridemate/plateid/internal/model"
	"github.com/ridemate/plateid/pkg/vision"
)

// Recognizer runs the recognition pipeline: encode the image, ask the
// recognition service, parse its answer, gate on confidence, normalize the
// plate text. Stateless across invocations; safe for concurrent use. Every
// failure is converted to an Outcome variant — Process never returns an
// error.
type Recognizer struct {
	client        vision.Client
	maxImageBytes int64
}

// NewRecognizer creates a Recognizer with its dependencies. maxImageBytes
// caps local image reads, 0 means no cap.
func NewRecognizer(client vision.Client, maxImageBytes int64) *Recognizer {
	return &Recognizer{
		client:        client,
		maxImageBytes: maxImageBytes,
	}
}

// Process runs one independent pipeline invocation for ref. Retry is the
// caller's decision; a resubmission is a fresh invocation with no memory of
// prior attempts.
func (r *Recognizer) Process(ctx context.Context, ref model.ImageReference) model.Outcome {
	attemptID := uuid.NewString()
	log := zap.L().With(zap.String("attempt_id", attemptID))

	encoded, err := Encode(ref, r.maxImageBytes)
	if err != nil {
		log.Warn("pipeline: image unreadable", zap.Error(err))
		return model.UnreadableImage(err)
	}

	rec, err := r.client.Recognize(ctx, vision.Image{
		Base64:    encoded.Base64,
		MediaType: encoded.MediaType,
		URL:       encoded.URL,
	})
	if err != nil {
		if te, ok := vision.AsTransport(err); ok {
			log.Warn("pipeline: recognition transport failure",
				zap.String("kind", string(te.Kind)),
				zap.Error(te.Err),
			)
			return model.TransportFailure(model.TransportKind(te.Kind), te.Err)
		}
		log.Warn("pipeline: recognition failed", zap.Error(err))
		return model.TransportFailure(model.TransportNetwork, err)
	}
	rec.Usage.LogCost(rec.Model, attemptID)

	det, err := ParseDetection(rec.Text)
	if err != nil {
		log.Warn("pipeline: malformed recognition response",
			zap.Int("raw_len", len(rec.Text)),
			zap.Error(err),
		)
		return model.MalformedResponse(rec.Text)
	}

	decision := Gate(det)
	if !decision.Proceed {
		log.Info("pipeline: detection rejected",
			zap.String("kind", string(decision.Reject)),
			zap.String("reason", decision.Reason),
		)
		if decision.Reject == model.OutcomeRejectedNotAPlate {
			return model.RejectedNotAPlate(decision.Reason)
		}
		return model.RejectedLowConfidence(decision.Reason)
	}

	plate, err := Normalize(decision.PlateText)
	if err != nil {
		log.Info("pipeline: plate text unreadable",
			zap.String("raw_plate", decision.PlateText),
			zap.Error(err),
		)
		return model.RejectedUnreadable(err.Error())
	}

	log.Info("pipeline: plate accepted",
		zap.String("plate", plate.Display),
		zap.String("confidence", string(det.Confidence)),
	)
	return model.Accepted(plate, det.Confidence)
}
