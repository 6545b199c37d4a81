package driven

import "context"

// CompletionRequest is a single prompt for the remote completion
// service.
type CompletionRequest struct {
	// System is the system prompt: instructions plus document
	// excerpts.
	System string

	// Question is the user's question, sent as the user message.
	Question string

	// MaxTokens caps the length of the completion. Zero means the
	// service default.
	MaxTokens int

	// Temperature controls sampling randomness. Zero is a valid
	// temperature, so the field is a pointer; nil means the service
	// default.
	Temperature *float64
}

// CompletionService is the gateway to a remote language model provider.
//
// Implementations translate provider failures into the gateway
// sentinels in the domain package (ErrRateLimited, ErrAuthFailed,
// ErrInvalidRequest, ErrGatewayUnknown) so callers can react without
// knowing the provider's wire format.
type CompletionService interface {
	// Complete sends the request and returns the completion text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// SynthesizeSpeech renders text as spoken audio using the named
	// voice and returns the encoded audio bytes.
	SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error)

	// ModelName reports the completion model in use.
	ModelName() string

	// Ping verifies connectivity and credentials.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error
}
