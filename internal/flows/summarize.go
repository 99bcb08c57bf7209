package flows

import (
	"context"

	"google.golang.org/genai"
)

type SummarizeInput struct {
	PageContent string `json:"pageContent"`
}

type SummarizeOutput struct {
	Summary string `json:"summary"`
}

var summarizePrompt = mustPrompt("summarize", `Summarize the following content of a webpage:

{{.PageContent}}`)

var summarizeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": stringSchema("A summary of the content of the webpage."),
	},
	Required: []string{"summary"},
}

// Summarize condenses page content into a short summary
func (f *Flows) Summarize(ctx context.Context, in SummarizeInput) (SummarizeOutput, error) {
	if err := minLength("pageContent", in.PageContent, 1); err != nil {
		return SummarizeOutput{}, err
	}
	prompt, err := render(summarizePrompt, in)
	if err != nil {
		return SummarizeOutput{}, err
	}
	out, err := run[SummarizeOutput](ctx, f, Request{Name: "summarize", Prompt: prompt, Schema: summarizeSchema})
	if err != nil {
		return SummarizeOutput{}, err
	}
	if out == nil {
		return SummarizeOutput{}, ErrEmptyOutput
	}
	return *out, nil
}
