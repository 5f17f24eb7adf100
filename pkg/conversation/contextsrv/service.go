package contextsrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/knowledge"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/memory"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/profile"
	"github.com/sourcegraph/conc"
)

// Prefix introduces the augmentation block in the prompt.
const Prefix = "Context from your knowledge base and previous conversations:"

const recentTrips = 3

type MemoryRecaller interface {
	Recall(ctx context.Context, query, conversationID string, limit int) ([]memory.Recollection, error)
}

type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]knowledge.Hit, error)
}

// Config sets retrieval sizes and preview lengths.
type Config struct {
	MemoryResults       int
	KnowledgeResults    int
	MemoryPreviewLen    int
	KnowledgePreviewLen int
}

func DefaultConfig() Config {
	return Config{
		MemoryResults:       2,
		KnowledgeResults:    3,
		MemoryPreviewLen:    200,
		KnowledgePreviewLen: 150,
	}
}

// Assembler builds the retrieval-augmented context of a turn.
type Assembler struct {
	memories  MemoryRecaller
	knowledge KnowledgeSearcher
	profiles  profile.Provider
	cfg       Config
}

func NewAssembler(memories MemoryRecaller, kb KnowledgeSearcher, profiles profile.Provider, cfg Config) *Assembler {
	return &Assembler{
		memories:  memories,
		knowledge: kb,
		profiles:  profiles,
		cfg:       cfg,
	}
}

// Build returns the augmentation for message, or "" when nothing relevant
// was found. Retrieval failures only shrink the result.
func (a *Assembler) Build(ctx context.Context, message, conversationID string, personalized bool, userID string) string {
	var (
		recalled []memory.Recollection
		hits     []knowledge.Hit
		wg       conc.WaitGroup
	)

	if a.memories != nil && a.cfg.MemoryResults > 0 {
		wg.Go(func() {
			var err error
			recalled, err = a.memories.Recall(ctx, message, conversationID, a.cfg.MemoryResults)
			if err != nil {
				logx.WithFields(logx.Fields{
					"conversation_id": conversationID,
					"error":           err.Error(),
				}).Warn("Error retrieving conversation history")
				recalled = nil
			}
		})
	}
	if a.knowledge != nil && a.cfg.KnowledgeResults > 0 {
		wg.Go(func() {
			var err error
			hits, err = a.knowledge.Search(ctx, message, a.cfg.KnowledgeResults)
			if err != nil {
				logx.WithField("error", err.Error()).Warn("Error retrieving travel knowledge")
				hits = nil
			}
		})
	}
	wg.Wait()

	var b strings.Builder
	if len(recalled) > 0 {
		b.WriteString("\n\n🧠 **Relevant Conversation History:**\n")
		for _, r := range recalled {
			fmt.Fprintf(&b, "- %s...\n", preview(r.Content, a.cfg.MemoryPreviewLen))
		}
	}
	if len(hits) > 0 {
		b.WriteString("\n\n📚 **Relevant Travel Knowledge:**\n")
		for _, h := range hits {
			fmt.Fprintf(&b, "- **%s**: %s...\n", h.Title, preview(h.Content, a.cfg.KnowledgePreviewLen))
		}
	}
	if personalized {
		a.writeProfile(ctx, &b, userID)
	}
	return b.String()
}

func (a *Assembler) writeProfile(ctx context.Context, b *strings.Builder, userID string) {
	if a.profiles == nil {
		return
	}
	p, err := a.profiles.Get(ctx, userID)
	if err != nil {
		logx.WithFields(logx.Fields{"user_id": userID, "error": err.Error()}).Warn("No profile for personalization")
		return
	}

	prefs := p.Preferences
	b.WriteString("\n\n👤 **User Profile & Preferences:**\n")
	fmt.Fprintf(b, "- Name: %s\n", p.Name)
	fmt.Fprintf(b, "- Preferred Budget: %s\n", prefs.Budget)
	fmt.Fprintf(b, "- Preferred Accommodation: %s\n", strings.Join(prefs.Accommodation, ", "))
	fmt.Fprintf(b, "- Preferred Transport: %s\n", strings.Join(prefs.Transport, ", "))
	fmt.Fprintf(b, "- Food Preferences: %s\n", strings.Join(prefs.Food, ", "))
	fmt.Fprintf(b, "- Preferred Activities: %s\n", strings.Join(prefs.Activities, ", "))
	fmt.Fprintf(b, "- Special Needs: %s\n", p.SpecialNeeds)

	if trips := p.RecentTrips(recentTrips); len(trips) > 0 {
		b.WriteString("- Recent Travel History:\n")
		for _, t := range trips {
			fmt.Fprintf(b, "  • %s (%s) - %s\n", t.Destination, t.Date, t.Purpose)
		}
	}
	if len(p.LoyaltyPrograms) > 0 {
		programs := make([]string, len(p.LoyaltyPrograms))
		for i, lp := range p.LoyaltyPrograms {
			programs[i] = lp.String()
		}
		fmt.Fprintf(b, "- Loyalty Programs: %s\n", strings.Join(programs, ", "))
	}
}

// preview returns the first n runes of s.
func preview(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
