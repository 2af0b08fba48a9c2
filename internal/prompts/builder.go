// Package prompts builds the system prompts for the three pipeline stages.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/tools"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Builder renders stage prompts from embedded templates.
type Builder struct {
	templates *template.Template
}

// NewBuilder parses the embedded prompt templates.
func NewBuilder() (*Builder, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}
	return &Builder{templates: tmpl}, nil
}

// Router returns the system prompt for the tool-selection stage.
func (b *Builder) Router() (string, error) {
	return b.render("router.tmpl", nil)
}

// specialistData feeds the specialist template.
type specialistData struct {
	ToolName           string
	Metadata           string
	Currency           string
	CurrentDate        string
	FunctionDefinition string
	Examples           string
}

// Specialist returns the system prompt for the argument-generation stage of
// the given tool. metadata is the caller-supplied description of the
// dataset's categories.
func (b *Builder) Specialist(kind tools.Kind, metadata, currency string, now time.Time) (string, error) {
	tp, ok := toolPrompts[kind]
	if !ok {
		return "", fmt.Errorf("no prompt defined for tool %s", kind.Name())
	}
	return b.render("specialist.tmpl", specialistData{
		ToolName:           kind.Name(),
		Metadata:           metadata,
		Currency:           currency,
		CurrentDate:        now.Format("2006-01-02"),
		FunctionDefinition: tp.FunctionDefinition,
		Examples:           tp.Examples,
	})
}

// Summarizer returns the system prompt for the answer-rewriting stage.
func (b *Builder) Summarizer() (string, error) {
	return b.render("summary.tmpl", nil)
}

// SummaryUser formats the user message handed to the summarizer.
func SummaryUser(question, result string) string {
	return fmt.Sprintf("User Question: %s\n Analysis Result: %s", question, result)
}

func (b *Builder) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := b.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
