package vision

import (
	"context"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// recognitionInstruction is the fixed instruction template sent with every
// image. The deployment does not vary or version it; the response parser
// depends on the field schema it requires.
const recognitionInstruction = `You are a vehicle license plate reader. Examine the photo and answer with a single JSON object using exactly these fields:
{"isPlate": <true|false>, "plateNumber": "<plate text>", "confidence": "<high|medium|low>", "reason": "<short rationale>"}
Set isPlate to false when the photo does not show a vehicle license plate. Omit plateNumber when no text is legible. Do not add any text outside the JSON object.`

const recognitionPrompt = `Read the license plate in this photo.`

// Client defines the recognition service operations used by the pipeline.
type Client interface {
	// Recognize submits one encoded image and returns the service's raw
	// textual answer. It does not interpret content and does not retry.
	Recognize(ctx context.Context, img Image) (*Recognition, error)
}

// Image is a transport-ready image: either inline base64 bytes with a media
// type, or a remote URL the service fetches itself.
type Image struct {
	Base64    string
	MediaType string
	URL       string
}

// Recognition is the raw answer from one recognition call.
type Recognition struct {
	Text  string
	Model string
	Usage TokenUsage
}

// Options configures the SDK-backed client.
type Options struct {
	APIKey    string
	Model     string
	MaxTokens int64
	// Timeout bounds each recognition call. Zero means no client deadline
	// beyond the caller's context.
	Timeout time.Duration
	// RateRPS/RateBurst pace outgoing requests so a burst of submissions
	// does not trip the service quota. Zero RPS disables pacing.
	RateRPS   float64
	RateBurst int
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client  sdk.Client
	opts    Options
	limiter *rate.Limiter
}

// NewClient creates a recognition client backed by the SDK.
func NewClient(opts Options) Client {
	c := &sdkClient{
		client: sdk.NewClient(
			option.WithAPIKey(opts.APIKey),
		),
		opts: opts,
	}
	if opts.RateRPS > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateRPS), burst)
	}
	return c
}

func (c *sdkClient) Recognize(ctx context.Context, img Image) (*Recognition, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classify(err)
		}
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	var imageBlock sdk.ContentBlockParamUnion
	if img.URL != "" {
		imageBlock = sdk.NewImageBlock(sdk.URLImageSourceParam{URL: img.URL})
	} else {
		imageBlock = sdk.NewImageBlockBase64(img.MediaType, img.Base64)
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.opts.Model),
		MaxTokens: c.opts.MaxTokens,
		System: []sdk.TextBlockParam{
			{Text: recognitionInstruction},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(imageBlock, sdk.NewTextBlock(recognitionPrompt)),
		},
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}

	rec := &Recognition{
		Text:  extractText(msg),
		Model: string(msg.Model),
		Usage: TokenUsage{
			InputTokens:              msg.Usage.InputTokens,
			OutputTokens:             msg.Usage.OutputTokens,
			CacheCreationInputTokens: msg.Usage.CacheCreationInputTokens,
			CacheReadInputTokens:     msg.Usage.CacheReadInputTokens,
		},
	}

	zap.L().Debug("vision: recognition complete",
		zap.String("model", rec.Model),
		zap.Int("answer_len", len(rec.Text)),
	)

	return rec, nil
}

// extractText concatenates all text content blocks from a message response.
func extractText(msg *sdk.Message) string {
	if msg == nil {
		return ""
	}
	var parts []string
	for _, block := range msg.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}
