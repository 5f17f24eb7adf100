package speech

// SynthesisOption represents a configuration option for text-to-speech operations
type SynthesisOption func(*SynthesisOptions)

// SynthesisOptions contains all configurable parameters for text-to-speech operations
type SynthesisOptions struct {
	Voice       string
	Model       string
	SpeechRate  float32 // 1.0 is normal speed
	AudioFormat AudioFormat
	SampleRate  int
}

// WithVoice sets the voice to use
func WithVoice(voice string) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.Voice = voice
	}
}

// WithTTSModel sets the TTS model to use
func WithTTSModel(model string) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.Model = model
	}
}

// WithSpeechRate sets the speech rate multiplier
func WithSpeechRate(rate float32) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.SpeechRate = rate
	}
}

// WithOutputFormat sets the audio output format
func WithOutputFormat(format AudioFormat) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.AudioFormat = format
	}
}

// WithOutputSampleRate sets the audio sample rate in Hz
func WithOutputSampleRate(sampleRate int) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.SampleRate = sampleRate
	}
}

// ApplySynthesis builds SynthesisOptions from opts on top of normal speed MP3.
func ApplySynthesis(opts ...SynthesisOption) *SynthesisOptions {
	o := &SynthesisOptions{SpeechRate: 1.0, AudioFormat: AudioFormatMP3}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
