package prompts

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// RenderAssistantPrompt renders the assistant system prompt using embedded Go
// templates. history is a pre-formatted transcript of prior exchanges and may
// be empty for a fresh session.
func RenderAssistantPrompt(history string) (string, error) {
	templateContent, err := templatesFS.ReadFile("templates/assistant_system.md")
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("assistant_system").Parse(string(templateContent))
	if err != nil {
		return "", err
	}

	data := struct {
		History string
	}{
		History: history,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
