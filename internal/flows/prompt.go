package flows

import (
	"strings"
	"text/template"
)

// mustPrompt parses a prompt template at package init
func mustPrompt(name, text string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=zero").Parse(text))
}

func render(tmpl *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
