package vectorx

import (
	"net/http"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("VECTOR")

var (
	ErrEmbedding = ErrRegistry.Register("EMBEDDING", errx.TypeExternal, http.StatusBadGateway, "Failed to embed text")
	ErrBackend   = ErrRegistry.Register("BACKEND", errx.TypeInternal, http.StatusInternalServerError, "Vector backend operation failed")
)
