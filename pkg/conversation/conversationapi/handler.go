package conversationapi

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/speech"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/auth"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationsrv"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/export"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
)

type ChatRequest struct {
	Message        string   `json:"message"`
	ConversationID string   `json:"conversation_id"`
	Personalized   bool     `json:"personalized"`
	SpeechSpeed    *float64 `json:"speech_speed"`
}

type ChatResponse struct {
	Response       string                        `json:"response"`
	ConversationID string                        `json:"conversation_id"`
	FunctionCalls  []conversationsrv.ToolCallLog `json:"function_calls"`
	AudioBase64    *string                       `json:"audio_base64"`
}

type TTSRequest struct {
	Text      string   `json:"text"`
	Speed     *float64 `json:"speed"`
	MaxLength int      `json:"max_length"`
}

type ExportRequest struct {
	Messages []export.Message `json:"messages"`
	Format   string           `json:"format"`
	Filename string           `json:"filename"`
}

var ErrRegistry = errx.NewRegistry("API")

var (
	CodeInvalidBody = ErrRegistry.Register("INVALID_BODY", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
	CodeEmptyText   = ErrRegistry.Register("EMPTY_TEXT", errx.TypeValidation, http.StatusBadRequest, "Text cannot be empty")
	CodeSpeed       = ErrRegistry.Register("INVALID_SPEED", errx.TypeValidation, http.StatusBadRequest, "Speech speed must be between 0.5 and 2.0")
	CodeTTSFailed   = ErrRegistry.Register("TTS_FAILED", errx.TypeExternal, http.StatusInternalServerError, "TTS generation failed")
)

// ConversationHandlers serves the chat API.
type ConversationHandlers struct {
	service     *conversationsrv.ConversationService
	synth       *speech.Synthesizer
	exporter    *export.Exporter
	defaultUser string
}

func NewConversationHandlers(
	service *conversationsrv.ConversationService,
	synth *speech.Synthesizer,
	exporter *export.Exporter,
	defaultUser string,
) *ConversationHandlers {
	return &ConversationHandlers{
		service:     service,
		synth:       synth,
		exporter:    exporter,
		defaultUser: defaultUser,
	}
}

// RegisterRoutes mounts the API. A nil middleware leaves it public.
func (h *ConversationHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.Middleware) {
	var api fiber.Router
	if authMiddleware != nil {
		api = router.Group("/api", authMiddleware.Authenticate())
	} else {
		api = router.Group("/api")
	}

	api.Post("/chat", h.Chat)
	api.Get("/conversations", h.ListConversations)
	api.Get("/conversations/:id", h.GetConversation)
	api.Delete("/conversations/:id", h.DeleteConversation)
	api.Post("/tts", h.TextToSpeech)
	api.Post("/export", h.Export)
	api.Get("/stats", h.Stats)
}

func (h *ConversationHandlers) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrRegistry.New(CodeInvalidBody).WithDetail("error", err.Error())
	}

	speed := 1.0
	if req.SpeechSpeed != nil {
		speed = *req.SpeechSpeed
	}

	res, err := h.service.ProcessTurn(c.UserContext(), conversationsrv.TurnRequest{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		Personalized:   req.Personalized,
		SpeechSpeed:    speed,
		UserID:         auth.UserID(c, h.defaultUser),
	})
	if err != nil {
		return err
	}

	out := ChatResponse{
		Response:       res.Response,
		ConversationID: res.ConversationID,
		FunctionCalls:  res.ToolCalls,
	}
	if res.Audio != nil {
		encoded := res.Audio.Base64()
		out.AudioBase64 = &encoded
	}
	return c.JSON(out)
}

func (h *ConversationHandlers) GetConversation(c *fiber.Ctx) error {
	id := c.Params("id")
	state, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"conversation_id": id,
		"messages":        state.Turns,
	})
}

func (h *ConversationHandlers) DeleteConversation(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Conversation deleted successfully"})
}

func (h *ConversationHandlers) ListConversations(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"conversations": list})
}

func (h *ConversationHandlers) TextToSpeech(c *fiber.Ctx) error {
	var req TTSRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrRegistry.New(CodeInvalidBody).WithDetail("error", err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return ErrRegistry.New(CodeEmptyText)
	}
	speed := 1.0
	if req.Speed != nil {
		speed = *req.Speed
	}
	if math.IsNaN(speed) || speed < speech.MinSpeed || speed > speech.MaxSpeed {
		return ErrRegistry.New(CodeSpeed).WithDetail("speed", speed)
	}
	if req.MaxLength <= 0 {
		req.MaxLength = speech.DefaultMaxLength
	}

	clip := h.synth.Synthesize(c.UserContext(), req.Text, req.MaxLength, speed)
	if clip == nil {
		return ErrRegistry.New(CodeTTSFailed)
	}
	return c.JSON(fiber.Map{
		"audio_base64": clip.Base64(),
		"text":         req.Text,
		"speed":        speed,
		"max_length":   req.MaxLength,
	})
}

func (h *ConversationHandlers) Export(c *fiber.Ctx) error {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrRegistry.New(CodeInvalidBody).WithDetail("error", err.Error())
	}
	if len(req.Messages) == 0 {
		return export.ErrRegistry.New(export.CodeNoMessages)
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return err
	}

	file, err := h.exporter.Export(c.UserContext(), req.Messages, format, req.Filename)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", file.Name))
	return c.Send(file.Data)
}

func (h *ConversationHandlers) Stats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats(c.UserContext()))
}
