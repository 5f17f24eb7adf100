// Package export renders chat transcripts as text or spreadsheet files.
package export

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/fsx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
)

type Format string

const (
	FormatExcel Format = "excel"
	FormatText  Format = "txt"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatExcel:
		return FormatExcel, nil
	case FormatText:
		return FormatText, nil
	}
	return "", ErrRegistry.New(CodeInvalidFormat).WithDetail("format", s)
}

func (f Format) Extension() string {
	if f == FormatExcel {
		return ".xlsx"
	}
	return ".txt"
}

func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/plain; charset=utf-8"
}

type FunctionCall struct {
	Name string `json:"name"`
}

// Message is one transcript line as the client sends it.
type Message struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	Timestamp    string        `json:"timestamp,omitempty"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	// Location is where the copy was stored, empty if storing failed.
	Location string
}

// Exporter renders transcripts and keeps a copy in a file system.
type Exporter struct {
	fs  fsx.FileSystem
	now func() time.Time
}

func NewExporter(fs fsx.FileSystem) *Exporter {
	return &Exporter{fs: fs, now: time.Now}
}

// BaseName strips a known extension from name, or generates a
// timestamped one when name is empty.
func BaseName(name string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "chat_export_" + now.Format("20060102_150405")
	}
	name = strings.ReplaceAll(name, ".xlsx", "")
	return strings.ReplaceAll(name, ".txt", "")
}

func (e *Exporter) Export(ctx context.Context, messages []Message, format Format, filename string) (*File, error) {
	if len(messages) == 0 {
		return nil, ErrRegistry.New(CodeNoMessages)
	}

	file := &File{
		Name:        BaseName(filename, e.now()) + format.Extension(),
		ContentType: format.ContentType(),
	}
	switch format {
	case FormatExcel:
		data, err := RenderExcel(messages)
		if err != nil {
			return nil, ErrRegistry.NewWithCause(CodeRender, err)
		}
		file.Data = data
	case FormatText:
		file.Data = RenderText(messages)
	default:
		return nil, ErrRegistry.New(CodeInvalidFormat).WithDetail("format", string(format))
	}

	if e.fs != nil {
		if err := e.fs.WriteFile(ctx, file.Name, file.Data); err != nil {
			logx.WithFields(logx.Fields{"file": file.Name, "error": err.Error()}).Warn("Failed to store export copy")
		} else {
			file.Location = e.fs.Location(file.Name)
		}
	}
	return file, nil
}

var separator = "\n" + strings.Repeat("=", 50) + "\n\n"

// RenderText writes role-labelled blocks separated by a rule. Messages
// without content are skipped.
func RenderText(messages []Message) []byte {
	var b strings.Builder
	for i, msg := range messages {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		switch msg.Role {
		case "user":
			fmt.Fprintf(&b, "👤 USER: %s\n", msg.Content)
		case "assistant":
			fmt.Fprintf(&b, "🤖 ASSISTANT: %s\n", msg.Content)
		case "system":
			fmt.Fprintf(&b, "⚙️ SYSTEM: %s\n", msg.Content)
		case "tool", "function":
			fmt.Fprintf(&b, "🔧 TOOL: %s\n", msg.Content)
		}
		if msg.Timestamp != "" {
			fmt.Fprintf(&b, "   📅 %s\n", msg.Timestamp)
		}
		if i < len(messages)-1 {
			b.WriteString(separator)
		}
	}
	return []byte(b.String())
}

var ErrRegistry = errx.NewRegistry("EXPORT")

var (
	CodeNoMessages    = ErrRegistry.Register("NO_MESSAGES", errx.TypeValidation, http.StatusBadRequest, "No messages provided for export")
	CodeInvalidFormat = ErrRegistry.Register("INVALID_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Format must be 'excel' or 'txt'")
	CodeRender        = ErrRegistry.Register("RENDER", errx.TypeInternal, http.StatusInternalServerError, "Error exporting messages")
)
