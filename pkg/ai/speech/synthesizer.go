package speech

import (
	"context"
	"encoding/base64"
	"io"
	"math"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
)

const (
	MinSpeed         = 0.5
	MaxSpeed         = 2.0
	DefaultMaxLength = 200
)

// Clip is synthesized audio held in memory.
type Clip struct {
	Data       []byte
	Format     AudioFormat
	SampleRate int
	// Text is the (possibly truncated) text that was spoken.
	Text string
}

func (c *Clip) Base64() string {
	if c == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(c.Data)
}

// Synthesizer wraps a Speaker with the assistant's speaking rules: bounded
// text length, a clamped speed and no error surface. A nil Synthesizer or
// one without a Speaker never produces audio.
type Synthesizer struct {
	speaker Speaker
	opts    []SynthesisOption
}

func NewSynthesizer(speaker Speaker, opts ...SynthesisOption) *Synthesizer {
	return &Synthesizer{speaker: speaker, opts: opts}
}

func (s *Synthesizer) Available() bool {
	return s != nil && s.speaker != nil
}

// Synthesize returns nil on any failure; callers treat that as "no audio".
func (s *Synthesizer) Synthesize(ctx context.Context, text string, maxLength int, speed float64) *Clip {
	if !s.Available() || strings.TrimSpace(text) == "" {
		return nil
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	text = Truncate(text, maxLength)
	speed = ClampSpeed(speed)

	opts := append(append([]SynthesisOption(nil), s.opts...), WithSpeechRate(float32(speed)))
	audio, err := s.speaker.Synthesize(ctx, text, opts...)
	if err != nil {
		logx.WithFields(logx.Fields{"speed": speed, "chars": len(text)}).Warnf("speech synthesis failed: %v", err)
		return nil
	}
	if audio.Content == nil {
		return nil
	}
	defer audio.Content.Close()

	data, err := io.ReadAll(audio.Content)
	if err != nil || len(data) == 0 {
		logx.Warnf("speech synthesis returned no audio: %v", err)
		return nil
	}
	return &Clip{Data: data, Format: audio.Format, SampleRate: audio.SampleRate, Text: text}
}

// ClampSpeed bounds speed to [MinSpeed, MaxSpeed]; NaN becomes normal speed.
func ClampSpeed(speed float64) float64 {
	if math.IsNaN(speed) {
		return 1.0
	}
	return math.Min(MaxSpeed, math.Max(MinSpeed, speed))
}

// Truncate cuts text to maxLength runes and marks the cut with "...".
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}
