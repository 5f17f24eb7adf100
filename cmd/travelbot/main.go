// Command travelbot runs the travel assistant as an HTTP server or from the
// terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/config"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "travelbot",
	Short:         "AI travel assistant with weather, trip search and speech",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logx.Configure(os.Stderr, cfg.IsDevelopment())
	logx.SetLevel(logx.ParseLevel(cfg.Server.LogLevel))
	return cfg, nil
}
