package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHFBaseURL = "https://api-inference.huggingface.co"

	// maxBinaryResponse caps image and audio payloads read from providers.
	maxBinaryResponse = 50 << 20
)

// HuggingFace runs text-to-image inference against a hosted model.
type HuggingFace struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewHuggingFace(apiKey, model string, timeout time.Duration) *HuggingFace {
	return &HuggingFace{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultHFBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HuggingFace) WithBaseURL(baseURL string) *HuggingFace {
	h.baseURL = strings.TrimSuffix(baseURL, "/")
	return h
}

// GenerateImage returns raw PNG bytes for the prompt.
func (h *HuggingFace) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, transportError("huggingface", err)
	}
	defer resp.Body.Close()

	body, err := readBounded(resp.Body)
	if err != nil {
		return nil, transportError("huggingface", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("huggingface", resp.StatusCode, body)
	}
	return body, nil
}

func readBounded(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBinaryResponse+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBinaryResponse {
		return nil, fmt.Errorf("response exceeds %d bytes", maxBinaryResponse)
	}
	return body, nil
}
