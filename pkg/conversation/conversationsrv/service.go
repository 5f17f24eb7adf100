package conversationsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/agentx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/memoryx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/speech"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/contextsrv"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/metrics"
)

const apologyPrefix = "I apologize, but I encountered an error while processing your request: "

// ContextBuilder produces the retrieval augmentation of a turn.
type ContextBuilder interface {
	Build(ctx context.Context, message, conversationID string, personalized bool, userID string) string
}

// MemoryWriter stores finished exchanges.
type MemoryWriter interface {
	Remember(ctx context.Context, conversationID, userMessage, assistantResponse string) error
	Count(ctx context.Context) (int, error)
}

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type TurnRequest struct {
	Message        string
	ConversationID string
	Personalized   bool
	SpeechSpeed    float64
	UserID         string
}

// ToolCallLog records the tool dispatched during a turn.
type ToolCallLog struct {
	Function  string         `json:"function"`
	Arguments map[string]any `json:"arguments"`
	Result    any            `json:"result"`
}

type TurnResult struct {
	Response       string
	ConversationID string
	ToolCalls      []ToolCallLog
	Audio          *speech.Clip
	// Phases lists the pipeline phases the turn went through.
	Phases []conversation.Phase
}

type Stats struct {
	ActiveConversations int       `json:"active_conversations"`
	StoredMemories      int       `json:"stored_conversations"`
	KnowledgeEntries    int       `json:"knowledge_base_entries"`
	TTSAvailable        bool      `json:"tts_available"`
	Timestamp           time.Time `json:"timestamp"`
}

// ConversationService drives chat turns over the conversation store.
type ConversationService struct {
	store        conversation.Store
	agent        *agentx.Agent
	assembler    ContextBuilder
	memories     MemoryWriter
	knowledge    Counter
	synth        *speech.Synthesizer
	metrics      *metrics.Metrics
	window       memoryx.Window
	systemPrompt string
	speechMax    int
	defaultUser  string
	locks        *keyedMutex
	now          func() time.Time
	newID        func() string
}

type Option func(*ConversationService)

func WithAssembler(a ContextBuilder) Option {
	return func(s *ConversationService) { s.assembler = a }
}

func WithMemory(m MemoryWriter) Option {
	return func(s *ConversationService) { s.memories = m }
}

// WithKnowledge sets the corpus reported in stats.
func WithKnowledge(k Counter) Option {
	return func(s *ConversationService) { s.knowledge = k }
}

func WithSynthesizer(synth *speech.Synthesizer, maxLength int) Option {
	return func(s *ConversationService) {
		s.synth = synth
		s.speechMax = maxLength
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ConversationService) { s.metrics = m }
}

func WithWindow(w memoryx.Window) Option {
	return func(s *ConversationService) { s.window = w }
}

func WithSystemPrompt(prompt string) Option {
	return func(s *ConversationService) { s.systemPrompt = prompt }
}

func WithDefaultUser(userID string) Option {
	return func(s *ConversationService) { s.defaultUser = userID }
}

func withClock(now func() time.Time) Option {
	return func(s *ConversationService) { s.now = now }
}

func NewConversationService(store conversation.Store, agent *agentx.Agent, opts ...Option) *ConversationService {
	s := &ConversationService{
		store:        store,
		agent:        agent,
		window:       memoryx.DefaultWindow(),
		systemPrompt: SystemPrompt(0),
		speechMax:    speech.DefaultMaxLength,
		locks:        newKeyedMutex(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessTurn runs one user message through the assistant. Model and tool
// failures are answered with an apology; only an empty message or a store
// failure is returned as an error.
func (s *ConversationService) ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, conversation.ErrEmptyMessage()
	}
	// In-flight model and tool calls run to completion once started.
	ctx = context.WithoutCancel(ctx)
	started := s.now()

	id := req.ConversationID
	if id == "" {
		id = s.newID()
	}
	userID := req.UserID
	if userID == "" {
		userID = s.defaultUser
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.assembler != nil {
		if augmentation := s.assembler.Build(ctx, req.Message, id, req.Personalized, userID); augmentation != "" {
			state.Append(conversation.SystemTurn(contextsrv.Prefix + augmentation))
		}
	}
	state.Append(conversation.UserTurn(req.Message, s.now()))

	tracker := conversation.NewTracker()
	rec := &turnRecorder{state: state, tracker: tracker, metrics: s.metrics, conversationID: id}
	s.advance(tracker, conversation.PhaseAwaitingModel)

	result := &TurnResult{ConversationID: id, ToolCalls: []ToolCallLog{}}
	exchange, runErr := s.agent.Run(ctx, state.Messages(), rec)
	if exchange != nil && exchange.ToolCall != nil {
		result.ToolCalls = append(result.ToolCalls, ToolCallLog{
			Function:  exchange.ToolCall.Name,
			Arguments: exchange.ToolCall.Arguments,
			Result:    exchange.ToolCall.Result.Value(),
		})
	}

	outcome := metrics.OutcomeOK
	if runErr != nil {
		outcome = metrics.OutcomeFailure
		tracker.Fail()
		result.Response = apologyPrefix + reason(runErr)
		logx.WithFields(logx.Fields{
			"conversation_id": id,
			"error":           runErr.Error(),
		}).Errorf("Error processing chat message")
	} else {
		s.advance(tracker, conversation.PhaseResponding)
		result.Response = exchange.Content
	}
	state.Append(conversation.AssistantTurn(result.Response, s.now()))
	s.advance(tracker, conversation.PhaseIdle)

	if runErr == nil {
		s.remember(ctx, id, req.Message, result.Response)
		if result.Response != "" {
			result.Audio = s.synth.Synthesize(ctx, result.Response, s.speechMax, req.SpeechSpeed)
		}
	}

	state.Truncate(s.window)
	state.UpdatedAt = s.now()
	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}

	result.Phases = tracker.History()
	s.metrics.Turn(outcome, s.now().Sub(started))
	return result, nil
}

func (s *ConversationService) load(ctx context.Context, id string) (*conversation.State, error) {
	state, err := s.store.Get(ctx, id)
	if err == nil {
		return state, nil
	}
	if errx.IsCode(err, conversation.CodeNotFound) {
		return conversation.NewState(id, s.systemPrompt, s.now()), nil
	}
	return nil, err
}

func (s *ConversationService) advance(tracker *conversation.Tracker, to conversation.Phase) {
	if err := tracker.Transition(to); err != nil {
		logx.Warnf("turn phase: %v", err)
	}
}

func (s *ConversationService) remember(ctx context.Context, id, message, response string) {
	if s.memories == nil {
		return
	}
	err := s.memories.Remember(ctx, id, message, response)
	s.metrics.MemoryWrite(err)
	if err != nil {
		logx.WithFields(logx.Fields{
			"conversation_id": id,
			"error":           err.Error(),
		}).Warn("Error storing conversation")
	}
}

// reason renders err for the user without internal codes.
func reason(err error) string {
	e, ok := err.(*errx.Error)
	if !ok {
		return err.Error()
	}
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + reason(e.Err)
}

// turnRecorder mirrors tool exchanges into the conversation state.
type turnRecorder struct {
	state          *conversation.State
	tracker        *conversation.Tracker
	metrics        *metrics.Metrics
	conversationID string
}

func (r *turnRecorder) ToolRequested(msg llm.Message) {
	r.transition(conversation.PhaseToolRequested)
	r.state.Append(conversation.TurnFromMessage(msg))
}

func (r *turnRecorder) ToolCompleted(call agentx.ToolCall, msg llm.Message) {
	r.transition(conversation.PhaseAwaitingToolResult)
	r.state.Append(conversation.TurnFromMessage(msg))
	r.metrics.ToolCall(call.Name, call.Result.IsError())
	logx.WithFields(logx.Fields{
		"conversation_id": r.conversationID,
		"tool":            call.Name,
		"failed":          call.Result.IsError(),
	}).Info("Tool call completed")
	r.transition(conversation.PhaseAwaitingModel)
}

func (r *turnRecorder) transition(to conversation.Phase) {
	if err := r.tracker.Transition(to); err != nil {
		logx.Warnf("turn phase: %v", err)
	}
}

func (s *ConversationService) Get(ctx context.Context, id string) (*conversation.State, error) {
	return s.store.Get(ctx, id)
}

func (s *ConversationService) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

func (s *ConversationService) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.store.Delete(ctx, id)
}

// List returns conversation summaries, most recently updated first.
func (s *ConversationService) List(ctx context.Context) ([]conversation.Summary, error) {
	states, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]conversation.Summary, 0, len(states))
	for _, st := range states {
		out = append(out, st.Summary())
	}
	return out, nil
}

// Stats counts what the assistant currently holds. Counting failures are
// logged and reported as zero.
func (s *ConversationService) Stats(ctx context.Context) Stats {
	stats := Stats{
		TTSAvailable: s.synth.Available(),
		Timestamp:    s.now(),
	}
	stats.ActiveConversations = s.count(ctx, "conversations", s.store)
	if s.memories != nil {
		stats.StoredMemories = s.count(ctx, "memories", s.memories)
	}
	if s.knowledge != nil {
		stats.KnowledgeEntries = s.count(ctx, "knowledge", s.knowledge)
	}
	return stats
}

func (s *ConversationService) count(ctx context.Context, what string, c Counter) int {
	n, err := c.Count(ctx)
	if err != nil {
		logx.WithField("error", err.Error()).Warnf("Error counting %s", what)
		return 0
	}
	return n
}
