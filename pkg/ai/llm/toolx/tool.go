package toolx

import (
	"context"
	"encoding/json"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
)

// Handler implements a tool over its typed argument struct.
type Handler[A any] func(ctx context.Context, args A) (any, error)

type typedTool[A any] struct {
	name        string
	description string
	schema      Schema
	handler     Handler[A]
}

// NewTool binds a typed handler to a name, description and schema. The
// validated argument map is decoded into A through its json tags.
func NewTool[A any](name, description string, schema Schema, handler Handler[A]) Toolx {
	return &typedTool[A]{
		name:        name,
		description: description,
		schema:      schema,
		handler:     handler,
	}
}

func (t *typedTool[A]) Name() string {
	return t.name
}

func (t *typedTool[A]) Schema() Schema {
	return t.schema
}

func (t *typedTool[A]) GetTool() llm.Tool {
	return llm.Tool{
		Type: "function",
		Function: llm.Function{
			Name:        t.name,
			Description: t.description,
			Parameters:  t.schema.JSON(),
		},
	}
}

func (t *typedTool[A]) Call(ctx context.Context, args map[string]any) (any, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	var typed A
	if err := json.Unmarshal(raw, &typed); err != nil {
		return nil, err
	}
	return t.handler(ctx, typed)
}
