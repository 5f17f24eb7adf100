package agentx

import (
	"net/http"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AGENT")

var (
	ErrModelCall     = ErrRegistry.Register("MODEL_CALL", errx.TypeExternal, http.StatusBadGateway, "Language model call failed")
	ErrArgumentParse = ErrRegistry.Register("ARGUMENT_PARSE", errx.TypeValidation, http.StatusBadRequest, "Tool call arguments are not valid JSON")
)
