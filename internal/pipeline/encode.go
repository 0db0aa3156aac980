package pipeline

import (
	"encoding/base64"
	"net/http"
	"os"

	"github.com/rotisserie/eris"

	"github.com/ridemate/plateid/internal/model"
)

// ErrUnreadableImage marks a source image that cannot be read. Not retryable
// without a new image.
var ErrUnreadableImage = eris.New("pipeline: unreadable image")

// Encode converts an ImageReference into a transport-ready EncodedImage.
// Already-remote sources pass through unchanged; their validity is an
// upstream concern. maxBytes caps local reads, 0 means no cap.
func Encode(ref model.ImageReference, maxBytes int64) (model.EncodedImage, error) {
	if ref.Remote() {
		return model.EncodedImage{URL: ref.Source}, nil
	}

	data := ref.Bytes
	if len(data) == 0 && ref.Source != "" {
		b, err := os.ReadFile(ref.Source)
		if err != nil {
			return model.EncodedImage{}, eris.Wrap(ErrUnreadableImage, err.Error())
		}
		data = b
	}

	if len(data) == 0 {
		return model.EncodedImage{}, eris.Wrap(ErrUnreadableImage, "empty image source")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return model.EncodedImage{}, eris.Wrapf(ErrUnreadableImage, "image is %d bytes, limit %d", len(data), maxBytes)
	}

	return model.EncodedImage{
		Base64:    base64.StdEncoding.EncodeToString(data),
		MediaType: http.DetectContentType(data),
	}, nil
}
