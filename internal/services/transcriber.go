package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// STTClient posts audio to the speech-to-text endpoint as multipart
// form-data, field name "file", and reads back {"text": "..."}.
type STTClient struct {
	baseURL string
	client  *http.Client
}

func NewSTTClient(baseURL string) *STTClient {
	return &STTClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// transcription is slower than a plain fetch
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (stt *STTClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if filename == "" {
		filename = "voice.m4a"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copying audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart writer: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, stt.baseURL+"/stt", &body)
	if err != nil {
		return "", fmt.Errorf("building stt request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := stt.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("calling stt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stt returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding stt response: %w", err)
	}
	return strings.TrimSpace(parsed.Text), nil
}
