package flows

import (
	"context"

	"google.golang.org/genai"
)

type ImproveInput struct {
	PageContent string `json:"pageContent"`
}

type ImproveOutput struct {
	ImprovedContent string `json:"improvedContent"`
	Explanation     string `json:"explanation"`
}

var improvePrompt = mustPrompt("improve", `You are an AI expert in improving webpage content.

You will receive the content of a webpage. Rewrite it with better grammar, style, and clarity,
and explain the changes and improvements you made.

Page Content: {{.PageContent}}`)

var improveSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"improvedContent": stringSchema("The improved content with better grammar, style, and clarity."),
		"explanation":     stringSchema("Explanation of the changes and improvements made."),
	},
	Required: []string{"improvedContent", "explanation"},
}

// Improve rewrites page content for grammar, style and clarity
func (f *Flows) Improve(ctx context.Context, in ImproveInput) (ImproveOutput, error) {
	if err := minLength("pageContent", in.PageContent, 1); err != nil {
		return ImproveOutput{}, err
	}
	prompt, err := render(improvePrompt, in)
	if err != nil {
		return ImproveOutput{}, err
	}
	out, err := run[ImproveOutput](ctx, f, Request{Name: "improve", Prompt: prompt, Schema: improveSchema})
	if err != nil {
		return ImproveOutput{}, err
	}
	if out == nil {
		return ImproveOutput{}, ErrEmptyOutput
	}
	return *out, nil
}
