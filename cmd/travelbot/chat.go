package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationsrv"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant from the terminal",
		Long:  "Interactive session. Type /new to start a fresh conversation and /quit to leave.",
		RunE:  runChat,
	}
	cmd.Flags().StringP("conversation", "c", "", "Resume a conversation id")
	cmd.Flags().Bool("personalized", false, "Include the user's travel profile")
	cmd.Flags().StringP("user", "u", "", "Profile user id (default: $PROFILE_DEFAULT_USER)")
	rootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Speech.Enabled = false

	conversationID, _ := cmd.Flags().GetString("conversation")
	personalized, _ := cmd.Flags().GetBool("personalized")
	userID, _ := cmd.Flags().GetString("user")

	container := NewContainer(cmd.Context(), cfg)
	defer container.Cleanup()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🌍 TravelBot ready. /new starts over, /quit exits.")
	return chatLoop(cmd, container.Service, cmd.InOrStdin(), out, conversationsrv.TurnRequest{
		ConversationID: conversationID,
		Personalized:   personalized,
		UserID:         userID,
		SpeechSpeed:    1.0,
	})
}

func chatLoop(cmd *cobra.Command, svc *conversationsrv.ConversationService, in io.Reader, out io.Writer, base conversationsrv.TurnRequest) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n👤 You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/new":
			base.ConversationID = ""
			fmt.Fprintln(out, "Started a new conversation.")
			continue
		}

		req := base
		req.Message = line
		res, err := svc.ProcessTurn(cmd.Context(), req)
		if err != nil {
			return err
		}
		base.ConversationID = res.ConversationID

		for _, call := range res.ToolCalls {
			args, _ := json.Marshal(call.Arguments)
			fmt.Fprintf(out, "🔧 %s %s\n", call.Function, args)
		}
		fmt.Fprintf(out, "🤖 TravelBot: %s\n", res.Response)
	}
}
