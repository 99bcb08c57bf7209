package flows

import (
	"context"
	"fmt"
	"slices"

	"google.golang.org/genai"
)

// ContentTypes lists the kinds of content the writer can produce
var ContentTypes = []string{"blog_post", "email", "social_media_post", "poem", "short_story", "generic"}

// Tones lists the supported writing tones
var Tones = []string{"formal", "casual", "humorous", "professional", "creative"}

const (
	defaultContentType = "generic"
	defaultTone        = "professional"
)

// NoContent is returned as the content when the model produces nothing
const NoContent = "I apologize, but I encountered an issue generating content or the model did not return a valid response."

type ContentInput struct {
	Prompt             string `json:"prompt"`
	ContentType        string `json:"contentType"`
	Tone               string `json:"tone"`
	MaxLength          int    `json:"maxLength,omitempty"`
	CustomInstructions string `json:"customInstructions,omitempty"`
}

type ContentOutput struct {
	GeneratedContent string   `json:"generatedContent"`
	Warnings         []string `json:"warnings,omitempty"`
}

var contentPrompt = mustPrompt("content", `You are an AI content generation assistant. Generate content to the user's specification.

User's Main Prompt/Topic:
{{.Prompt}}

Content Type to Generate: {{.ContentType}}
Desired Tone: {{.Tone}}
{{if .MaxLength}}
Target Maximum Length: approximately {{.MaxLength}} (words or characters; a guideline, not a strict limit). Be concise.
{{end}}{{if .CustomInstructions}}
Additional Custom Instructions:
{{.CustomInstructions}}
{{end}}
If the request is hard to satisfy (too complex for a reasonable length, or a length too short for the topic),
add a brief note to the 'warnings' array. Otherwise leave 'warnings' empty.
The 'generatedContent' field must contain only the created text.`)

var contentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"generatedContent": stringSchema("The generated content."),
		"warnings": {
			Type:        genai.TypeArray,
			Description: "Optional warnings, e.g. if content was truncated or instructions were hard to follow.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"generatedContent"},
}

// GenerateContent writes free-form content of the requested type and tone
func (f *Flows) GenerateContent(ctx context.Context, in ContentInput) (ContentOutput, error) {
	if err := minLength("prompt", in.Prompt, 1); err != nil {
		return ContentOutput{}, err
	}
	if in.ContentType == "" {
		in.ContentType = defaultContentType
	}
	if in.Tone == "" {
		in.Tone = defaultTone
	}
	if !slices.Contains(ContentTypes, in.ContentType) {
		return ContentOutput{}, validationError("contentType", fmt.Sprintf("must be one of %v", ContentTypes))
	}
	if !slices.Contains(Tones, in.Tone) {
		return ContentOutput{}, validationError("tone", fmt.Sprintf("must be one of %v", Tones))
	}
	if in.MaxLength < 0 {
		return ContentOutput{}, validationError("maxLength", "must be positive")
	}

	prompt, err := render(contentPrompt, in)
	if err != nil {
		return ContentOutput{}, err
	}
	out, err := run[ContentOutput](ctx, f, Request{Name: "content", Prompt: prompt, Schema: contentSchema})
	if err != nil {
		return ContentOutput{}, err
	}
	if out == nil {
		return ContentOutput{
			GeneratedContent: NoContent,
			Warnings:         []string{"Model output was empty or invalid."},
		}, nil
	}
	return *out, nil
}
