package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io"

// ElevenLabs synthesizes speech from text with a fixed voice.
type ElevenLabs struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

func NewElevenLabs(apiKey, voiceID string, timeout time.Duration) *ElevenLabs {
	return &ElevenLabs{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: defaultElevenLabsBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (e *ElevenLabs) WithBaseURL(baseURL string) *ElevenLabs {
	e.baseURL = strings.TrimSuffix(baseURL, "/")
	return e
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// GenerateSpeech returns MP3 bytes for the given text.
func (e *ElevenLabs) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(speechRequest{
		Text:    text,
		ModelID: "eleven_monolingual_v1",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", e.baseURL, e.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, transportError("elevenlabs", err)
	}
	defer resp.Body.Close()

	body, err := readBounded(resp.Body)
	if err != nil {
		return nil, transportError("elevenlabs", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("elevenlabs", resp.StatusCode, body)
	}
	return body, nil
}
