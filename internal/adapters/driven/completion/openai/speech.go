package openai

import (
	"context"
	"fmt"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// speechRequest is the OpenAI /audio/speech request format.
type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// SynthesizeSpeech renders text as MP3 audio using the named voice.
// The success body is the raw audio stream, not JSON.
func (s *CompletionService) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty speech text", domain.ErrInvalidRequest)
	}
	if voice == "" {
		voice = "alloy"
	}

	body, err := s.post(ctx, "/audio/speech", speechRequest{
		Model:          s.speechModel,
		Input:          text,
		Voice:          voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty audio response", domain.ErrGatewayUnknown)
	}
	return body, nil
}
