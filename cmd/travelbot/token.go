package main

import (
	"fmt"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/auth"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token",
		RunE:  runToken,
	}
	cmd.Flags().StringP("user", "u", "user_001", "User id carried by the token")
	cmd.Flags().StringP("name", "n", "", "Display name")
	rootCmd.AddCommand(cmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return fmt.Errorf("AUTH_JWT_SECRET is not set")
	}
	user, _ := cmd.Flags().GetString("user")
	name, _ := cmd.Flags().GetString("name")

	token, err := auth.NewJWTServiceFromConfig(cfg.Auth).GenerateToken(user, name)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
