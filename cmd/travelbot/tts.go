package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/speech"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tts [text]",
		Short: "Synthesize speech to an audio file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTTS,
	}
	cmd.Flags().StringP("output", "o", "speech.mp3", "Output file")
	cmd.Flags().Float64P("speed", "s", 1.0, "Speech speed between 0.5 and 2.0")
	cmd.Flags().Int("max-length", speech.DefaultMaxLength, "Truncate text to this many characters")
	rootCmd.AddCommand(cmd)
}

func runTTS(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	speed, _ := cmd.Flags().GetFloat64("speed")
	maxLength, _ := cmd.Flags().GetInt("max-length")
	if speed < speech.MinSpeed || speed > speech.MaxSpeed {
		return fmt.Errorf("speed must be between %.1f and %.1f", speech.MinSpeed, speech.MaxSpeed)
	}

	synth := speech.NewSynthesizer(newProvider(cfg))
	clip := synth.Synthesize(cmd.Context(), strings.Join(args, " "), maxLength, speed)
	if clip == nil {
		return fmt.Errorf("speech synthesis failed")
	}
	if err := os.WriteFile(output, clip.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🔊 Wrote %d bytes of %s to %s\n", len(clip.Data), clip.Format, output)
	return nil
}
