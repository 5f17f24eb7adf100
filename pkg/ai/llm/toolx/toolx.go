package toolx

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
	"github.com/xeipuuv/gojsonschema"
)

// Toolx is a single callable tool. Arguments handed to Call have already
// been validated against Schema and completed with defaults.
type Toolx interface {
	Name() string
	GetTool() llm.Tool
	Schema() Schema
	Call(ctx context.Context, args map[string]any) (any, error)
}

type entry struct {
	tool      Toolx
	validator *gojsonschema.Schema
}

// Registry is the closed set of tools known to the assistant. It is built
// once and never mutated afterwards.
type Registry struct {
	entries map[string]entry
	order   []string
}

// NewRegistry compiles every tool's schema. Duplicate names and invalid
// schemas are rejected.
func NewRegistry(tools ...Toolx) (*Registry, error) {
	r := &Registry{entries: make(map[string]entry, len(tools))}
	for _, tool := range tools {
		name := tool.Name()
		if _, dup := r.entries[name]; dup {
			return nil, ErrRegistry.New(ErrDuplicateTool).WithDetail("tool", name)
		}
		validator, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.Schema().JSON()))
		if err != nil {
			return nil, ErrRegistry.NewWithCause(ErrInvalidSchema, err).WithDetail("tool", name)
		}
		r.entries[name] = entry{tool: tool, validator: validator}
		r.order = append(r.order, name)
	}
	return r, nil
}

// MustRegistry is NewRegistry for statically known tool sets.
func MustRegistry(tools ...Toolx) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Tools returns the model-facing definitions in registration order.
func (r *Registry) Tools() []llm.Tool {
	tools := make([]llm.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.entries[name].tool.GetTool())
	}
	return tools
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Dispatch runs the named tool. It never returns an error: unknown names,
// invalid arguments, backend failures and panics all come back as an
// error-shaped Result for the model to explain.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (res Result) {
	e, ok := r.entries[name]
	if !ok {
		return Fail(fmt.Sprintf("Unknown function: %s", name))
	}

	defer func() {
		if p := recover(); p != nil {
			res = Fail(fmt.Sprintf("Error executing function %s: %v", name, p))
		}
	}()

	args = e.tool.Schema().withDefaults(args)
	if msg := validate(e.validator, args); msg != "" {
		return Fail(fmt.Sprintf("Invalid arguments for %s: %s", name, msg))
	}

	out, err := e.tool.Call(ctx, args)
	if err != nil {
		if f, ok := err.(*failure); ok {
			return Fail(f.msg)
		}
		return Fail(fmt.Sprintf("Error executing function %s: %s", name, err.Error()))
	}
	if typed, ok := out.(Result); ok {
		return typed
	}
	return OK(out)
}

func validate(schema *gojsonschema.Schema, args map[string]any) string {
	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return err.Error()
	}
	if result.Valid() {
		return ""
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// ParseArguments decodes the raw JSON argument string the model produced.
// An empty string is an empty argument object.
func ParseArguments(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, errx.Wrap(err, "tool arguments are not a JSON object", errx.TypeValidation).
			WithDetail("arguments", raw)
	}
	if args == nil {
		return map[string]any{}, nil
	}
	return args, nil
}
