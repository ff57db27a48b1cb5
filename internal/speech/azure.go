package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

// SynthOption configures the Azure TTS client.
type SynthOption func(*Synthesizer)

// WithRate sets the prosody rate, e.g. "+30.00%". Empty disables the
// prosody wrapper.
func WithRate(rate string) SynthOption {
	return func(s *Synthesizer) {
		s.rate = rate
	}
}

// WithSynthTimeout sets the HTTP client timeout for TTS requests.
func WithSynthTimeout(d time.Duration) SynthOption {
	return func(s *Synthesizer) {
		s.httpClient.Timeout = d
	}
}

// Synthesizer converts text to speech via the Azure Cognitive Services
// REST endpoint.
type Synthesizer struct {
	subscriptionKey string
	region          string
	voice           string
	rate            string
	format          string
	httpClient      *http.Client
	log             *logger.Logger
}

// NewSynthesizer creates an Azure TTS client with the given credentials.
func NewSynthesizer(key, region, voice string, log *logger.Logger, opts ...SynthOption) *Synthesizer {
	s := &Synthesizer{
		subscriptionKey: key,
		region:          region,
		voice:           voice,
		rate:            "+30.00%",
		format:          DefaultAudioFormat,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize converts text to speech audio data (WAV bytes).
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	url := fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", s.region)

	ssml := s.buildSSML(text)
	s.log.Debug("azure tts: synthesizing %d chars with voice %s", len(text), s.voice)

	req, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Ocp-Apim-Subscription-Key", s.subscriptionKey)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", s.format)
	req.Header.Set("User-Agent", "SuChef/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("azure tts error %d: %s", resp.StatusCode, string(body))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio data: %w", err)
	}

	s.log.Debug("azure tts: got %d bytes of audio", len(audioData))
	return audioData, nil
}

// buildSSML creates SSML markup for the synthesis request. A slightly
// raised prosody rate keeps step narration from dragging.
func (s *Synthesizer) buildSSML(text string) string {
	inner := escapeSSML(text)
	if s.rate != "" {
		inner = fmt.Sprintf(`<prosody rate='%s'>%s</prosody>`, s.rate, inner)
	}
	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='en-US'><voice xml:lang='en-US' name='%s'>%s</voice></speak>`,
		s.voice, inner,
	)
}

var ssmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escapeSSML(text string) string {
	return ssmlEscaper.Replace(text)
}
