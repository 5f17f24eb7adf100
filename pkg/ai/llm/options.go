package llm

// ToolChoiceAuto lets the model decide whether to call a tool.
const ToolChoiceAuto = "auto"

// ChatOptions contains options for generating chat completions
type ChatOptions struct {
	Model       string   // Model name/identifier
	Temperature float32  // Controls randomness (0.0 to 2.0)
	MaxTokens   int      // Maximum number of tokens to generate
	Stop        []string // Stop sequences
	Tools       []Tool   // Available tools
	ToolChoice  any      // "auto", "none" or a specific tool name
	User        string   // Identifier representing end-user
}

// Option is a function type to modify ChatOptions
type Option func(*ChatOptions)

// WithModel sets the model to use
func WithModel(model string) Option {
	return func(o *ChatOptions) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(temp float32) Option {
	return func(o *ChatOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens sets the maximum number of tokens to generate
func WithMaxTokens(tokens int) Option {
	return func(o *ChatOptions) {
		o.MaxTokens = tokens
	}
}

// WithStop sets sequences where the API will stop generating further tokens
func WithStop(stop []string) Option {
	return func(o *ChatOptions) {
		o.Stop = stop
	}
}

// WithTools sets the available tools
func WithTools(tools []Tool) Option {
	return func(o *ChatOptions) {
		o.Tools = tools
	}
}

// WithToolChoice forces a specific tool
func WithToolChoice(toolChoice any) Option {
	return func(o *ChatOptions) {
		o.ToolChoice = toolChoice
	}
}

// WithUser sets the user identifier
func WithUser(user string) Option {
	return func(o *ChatOptions) {
		o.User = user
	}
}

// DefaultOptions returns the default options
func DefaultOptions() *ChatOptions {
	return &ChatOptions{
		Temperature: 0.7,
		MaxTokens:   0, // No limit by default
	}
}

// Apply builds ChatOptions from defaults and the given options.
func Apply(opts ...Option) *ChatOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
