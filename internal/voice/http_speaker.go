package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPSpeaker implementa Speaker contra una API de síntesis de voz
// hosteada (estilo ElevenLabs / agente conversacional con TTS).
type HTTPSpeaker struct {
	baseURL string
	apiKey  string
	voiceID string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPSpeaker construye el cliente HTTP del proveedor de voz.
func NewHTTPSpeaker(baseURL, apiKey, voiceID string, logger *zap.Logger) *HTTPSpeaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSpeaker{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		voiceID: voiceID,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type announceRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id,omitempty"`
}

type announceResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *HTTPSpeaker) Announce(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	bodyBytes, err := json.Marshal(announceRequest{Text: text, VoiceID: s.voiceID})
	if err != nil {
		return fmt.Errorf("marshal announce request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/speech", bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create announce request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("announce request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read announce response: %w", err)
	}

	if resp.StatusCode >= 400 {
		s.logger.Warn("voice provider error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return fmt.Errorf("voice provider error: status=%d", resp.StatusCode)
	}

	var ar announceResponse
	if err := json.Unmarshal(respBody, &ar); err == nil && ar.Error != nil {
		return fmt.Errorf("voice provider error: %s", ar.Error.Message)
	}

	return nil
}
