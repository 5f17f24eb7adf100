package toolx

import (
	"net/http"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TOOL")

var (
	ErrDuplicateTool = ErrRegistry.Register("DUPLICATE_TOOL", errx.TypeConflict, http.StatusInternalServerError, "Tool registered twice")
	ErrInvalidSchema = ErrRegistry.Register("INVALID_SCHEMA", errx.TypeInternal, http.StatusInternalServerError, "Tool parameter schema does not compile")
)
