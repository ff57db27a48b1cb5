package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

// Recognizer transcribes short utterances via the Azure Speech
// short-audio REST endpoint. Audio must be 16 kHz 16-bit mono WAV.
type Recognizer struct {
	subscriptionKey string
	region          string
	language        string
	httpClient      *http.Client
	log             *logger.Logger
}

// NewRecognizer creates an Azure STT client with the given credentials.
func NewRecognizer(key, region, language string, log *logger.Logger) *Recognizer {
	return &Recognizer{
		subscriptionKey: key,
		region:          region,
		language:        language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// recognitionResult is the "simple" format response of the short-audio
// endpoint.
type recognitionResult struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Recognize transcribes a single utterance. Returns
// domain.ErrNoSpeechDetected when the service heard only silence.
func (r *Recognizer) Recognize(ctx context.Context, wavData []byte) (string, error) {
	url := fmt.Sprintf(
		"https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1?language=%s&format=simple",
		r.region, r.language,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(wavData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Ocp-Apim-Subscription-Key", r.subscriptionKey)
	req.Header.Set("Content-Type", fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", CaptureSampleRate))
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stt request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("azure stt error %d: %s", resp.StatusCode, string(body))
	}

	var result recognitionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding stt response: %w", err)
	}

	return interpretRecognition(result)
}

// interpretRecognition maps the service status onto the transcript or
// the appropriate error.
func interpretRecognition(result recognitionResult) (string, error) {
	switch result.RecognitionStatus {
	case "Success":
		if result.DisplayText == "" {
			return "", domain.ErrNoSpeechDetected
		}
		return result.DisplayText, nil
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		return "", domain.ErrNoSpeechDetected
	default:
		return "", fmt.Errorf("recognition failed with status %q", result.RecognitionStatus)
	}
}
