package llm

// Role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message. Images carries data URLs (or https
// URLs) attached to a user message for vision-capable models.
type Message struct {
	Role    string   `json:"role"`
	Content string   `json:"content,omitempty"`
	Images  []string `json:"images,omitempty"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewUserMessage creates a new user message
func NewUserMessage(content string) Message {
	return Message{
		Role:    RoleUser,
		Content: content,
	}
}

// NewSystemMessage creates a new system message
func NewSystemMessage(content string) Message {
	return Message{
		Role:    RoleSystem,
		Content: content,
	}
}

// NewUserImageMessage creates a user message that pairs text with one or
// more images.
func NewUserImageMessage(content string, images ...string) Message {
	return Message{
		Role:    RoleUser,
		Content: content,
		Images:  images,
	}
}

// ResponseFormatType represents the format type for model outputs
type ResponseFormatType string

const (
	// JSONObject requests output in JSON object format
	JSONObject ResponseFormatType = "json_object"
	// TextFormat requests output in plain text (default)
	TextFormat ResponseFormatType = "text"
	// JSONSchema requests output conforming to a specific JSON schema
	JSONSchema ResponseFormatType = "json_schema"
)

// ResponseFormat specifies the desired output format
type ResponseFormat struct {
	Type       ResponseFormatType `json:"type"`
	JSONSchema any                `json:"schema,omitempty"` // Optional JSON schema for JSONSchema type
}

// WithResponseFormat specifies the output format
func WithResponseFormat(format *ResponseFormat) Option {
	return func(o *ChatOptions) {
		o.ResponseFormat = format
	}
}

// WithJSONResponseFormat sets the response format to JSON object
func WithJSONResponseFormat() Option {
	return func(o *ChatOptions) {
		o.ResponseFormat = &ResponseFormat{
			Type: JSONObject,
		}
	}
}

// WithJSONSchemaResponseFormat sets the response format to conform to a specific JSON schema
func WithJSONSchemaResponseFormat(schema any) Option {
	return func(o *ChatOptions) {
		o.ResponseFormat = &ResponseFormat{
			Type:       JSONSchema,
			JSONSchema: schema,
		}
	}
}
