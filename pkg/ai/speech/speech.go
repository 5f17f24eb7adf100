package speech

import (
	"context"
	"io"
)

// Speaker represents an interface for text-to-speech operations
type Speaker interface {
	// Synthesize converts text to speech audio
	Synthesize(ctx context.Context, text string, opts ...SynthesisOption) (Audio, error)
}

// Audio represents the generated speech audio
type Audio struct {
	// Content is the audio data
	Content io.ReadCloser

	// Format indicates the audio format (MP3, WAV, etc.)
	Format AudioFormat

	// SampleRate of the audio in Hz
	SampleRate int

	// Usage contains token/resource usage statistics
	Usage TTSUsage
}

// TTSUsage represents resource usage statistics for text-to-speech
type TTSUsage struct {
	InputCharacters int
	ProcessingTime  int // in milliseconds
}

// AudioFormat represents the format of speech audio
type AudioFormat string

const (
	AudioFormatMP3 AudioFormat = "mp3"
	AudioFormatWAV AudioFormat = "wav"
	AudioFormatPCM AudioFormat = "pcm"
	AudioFormatOGG AudioFormat = "ogg"
)

// ContentType returns the MIME type for the format.
func (f AudioFormat) ContentType() string {
	switch f {
	case AudioFormatWAV:
		return "audio/wav"
	case AudioFormatOGG:
		return "audio/ogg"
	case AudioFormatPCM:
		return "audio/L16"
	default:
		return "audio/mpeg"
	}
}
