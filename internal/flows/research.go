package flows

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/contentally/ally/internal/parser"
)

// FollowUpCount is the exact number of follow-up questions a research result carries
const FollowUpCount = 3

type ResearchInput struct {
	Topic       string `json:"topic"`
	FocusPoints string `json:"focusPoints,omitempty"`
}

type ResearchOutput struct {
	Summary           string          `json:"summary"`
	Sources           []parser.Source `json:"sources"`
	FollowUpQuestions []string        `json:"followUpQuestions"`
}

var researchPrompt = mustPrompt("research", `You are a helpful research assistant.
Given a topic, you MUST:
1. List the latest findings you know of as plausible sources with fully-formed URLs.
2. Summarize the key points in at most 250 words.
3. End with exactly 3 insightful follow-up questions.

Research Topic:
"{{.Topic}}"
{{if .FocusPoints}}
Key Focus Points:
{{.FocusPoints}}
Make sure the research specifically addresses these points.
{{end}}`)

var researchSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": stringSchema("A concise summary of the key findings, under 250 words."),
		"sources": {
			Type:        genai.TypeArray,
			Description: "Plausible sources for the summary. These are for reference and may not be real.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       stringSchema("The title of the source article or document."),
					"url":         stringSchema("The fully-formed URL of the source."),
					"publication": stringSchema("The publication or website name (e.g. 'Forbes', 'Wikipedia')."),
				},
				Required: []string{"title", "url"},
			},
		},
		"followUpQuestions": {
			Type:        genai.TypeArray,
			Description: "Exactly three follow-up questions based on the research.",
			Items:       &genai.Schema{Type: genai.TypeString},
			MinItems:    int64Ptr(FollowUpCount),
			MaxItems:    int64Ptr(FollowUpCount),
		},
	},
	Required: []string{"summary", "sources", "followUpQuestions"},
}

// Research produces a summary, plausible sources and follow-up questions
// for a topic. The model is not given web access.
func (f *Flows) Research(ctx context.Context, in ResearchInput) (ResearchOutput, error) {
	if err := minLength("topic", in.Topic, 5); err != nil {
		return ResearchOutput{}, err
	}
	prompt, err := render(researchPrompt, in)
	if err != nil {
		return ResearchOutput{}, err
	}
	out, err := run[ResearchOutput](ctx, f, Request{Name: "research", Prompt: prompt, Schema: researchSchema})
	if err != nil {
		return ResearchOutput{}, err
	}
	if out == nil {
		return ResearchOutput{}, ErrEmptyOutput
	}
	if len(out.FollowUpQuestions) != FollowUpCount {
		return ResearchOutput{}, fmt.Errorf("research: expected %d follow-up questions, got %d", FollowUpCount, len(out.FollowUpQuestions))
	}

	sources := make([]parser.Source, 0, len(out.Sources))
	for _, s := range out.Sources {
		if strings.TrimSpace(s.URL) == "" {
			continue
		}
		s.URL = parser.NormalizeURL(s.URL)
		if s.Title == "" {
			s.Title = parser.UntitledSource
		}
		sources = append(sources, s)
	}
	out.Sources = sources
	return *out, nil
}
