package flows

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/contentally/ally/internal/parser"
)

// fakeGenerator returns canned output and records every request
type fakeGenerator struct {
	out      string
	err      error
	requests []Request
}

func (g *fakeGenerator) Generate(_ context.Context, req Request) (json.RawMessage, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	if g.out == "" {
		return nil, nil
	}
	return json.RawMessage(g.out), nil
}

func newTestFlows(out string) (*Flows, *fakeGenerator) {
	gen := &fakeGenerator{out: out}
	return New(gen, zap.NewNop()), gen
}

func TestSummarize(t *testing.T) {
	f, gen := newTestFlows(`{"summary":"short"}`)

	out, err := f.Summarize(context.Background(), SummarizeInput{PageContent: "a long article"})
	require.NoError(t, err)
	assert.Equal(t, "short", out.Summary)

	require.Len(t, gen.requests, 1)
	assert.Equal(t, "summarize", gen.requests[0].Name)
	assert.Contains(t, gen.requests[0].Prompt, "a long article")
	assert.NotNil(t, gen.requests[0].Schema)
}

func TestValidationHappensBeforeGenerate(t *testing.T) {
	f, gen := newTestFlows(`{}`)
	ctx := context.Background()

	_, err := f.Summarize(ctx, SummarizeInput{PageContent: "   "})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.Improve(ctx, ImproveInput{})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.Plan(ctx, PlanInput{TaskDescription: "write report"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.Translate(ctx, TranslateInput{TextToTranslate: "hola", TargetLanguage: "e"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.ExtractText(ctx, OCRInput{ImageDataURI: "not a uri"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.AskDocument(ctx, DocumentInput{DocumentContent: "doc"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.Research(ctx, ResearchInput{Topic: "Go"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.GenerateContent(ctx, ContentInput{Prompt: "x", Tone: "angry"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.GenerateContent(ctx, ContentInput{Prompt: "x", ContentType: "novel"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, gen.requests)
}

func TestEmptyOutputWithoutFallback(t *testing.T) {
	f, _ := newTestFlows("")
	ctx := context.Background()

	_, err := f.Summarize(ctx, SummarizeInput{PageContent: "text"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
	_, err = f.Improve(ctx, ImproveInput{PageContent: "text"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
	_, err = f.Plan(ctx, PlanInput{TaskDescription: "text", Deadline: "today"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
	_, err = f.Translate(ctx, TranslateInput{TextToTranslate: "text", TargetLanguage: "es"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
	_, err = f.Research(ctx, ResearchInput{Topic: "quantum computing"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestEmptyOutputFallbacks(t *testing.T) {
	f, _ := newTestFlows("null")
	ctx := context.Background()

	ocr, err := f.ExtractText(ctx, OCRInput{ImageDataURI: parser.EncodeDataURI("image/png", []byte("png"))})
	require.NoError(t, err)
	assert.Equal(t, "", ocr.ExtractedText)

	doc, err := f.AskDocument(ctx, DocumentInput{DocumentContent: "doc", Question: "why?"})
	require.NoError(t, err)
	assert.Equal(t, NoAnswer, doc.Answer)

	content, err := f.GenerateContent(ctx, ContentInput{Prompt: "a poem about tea"})
	require.NoError(t, err)
	assert.Equal(t, NoContent, content.GeneratedContent)
	assert.Len(t, content.Warnings, 1)
}

func TestGeneratorErrorIsWrapped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	boom := errors.New("quota exceeded")
	gen := &fakeGenerator{err: boom}
	f := New(gen, zap.New(core))

	_, err := f.Plan(context.Background(), PlanInput{TaskDescription: "launch site", Deadline: "friday"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "plan:")

	warn := logs.FilterMessage("flow failed").All()
	require.Len(t, warn, 1)
	assert.Equal(t, "plan", warn[0].ContextMap()["flow"])
}

func TestPlanDecodesFencedJSON(t *testing.T) {
	f, gen := newTestFlows("```json\n" + `{
		"taskName": "Write report",
		"dailyTasks": [{"dayDescription": "Day 1: Outline", "subTasks": ["list sections", "collect data"]}],
		"overallReminder": "Keep going"
	}` + "\n```")

	out, err := f.Plan(context.Background(), PlanInput{TaskDescription: "quarterly report", Deadline: "end of next week"})
	require.NoError(t, err)
	assert.Equal(t, "Write report", out.TaskName)
	require.Len(t, out.DailyTasks, 1)
	assert.Equal(t, []string{"list sections", "collect data"}, out.DailyTasks[0].SubTasks)
	assert.Equal(t, "Keep going", out.OverallReminder)

	prompt := gen.requests[0].Prompt
	assert.Contains(t, prompt, "quarterly report")
	assert.Contains(t, prompt, "end of next week")
}

func TestTranslateAutoDetect(t *testing.T) {
	f, gen := newTestFlows(`{"translatedText":"hello","detectedSourceLanguage":"es"}`)

	out, err := f.Translate(context.Background(), TranslateInput{
		TextToTranslate: "hola",
		TargetLanguage:  "English",
		SourceLanguage:  "auto",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", out.TranslatedText)
	assert.Equal(t, "es", out.DetectedSourceLanguage)

	prompt := gen.requests[0].Prompt
	assert.Contains(t, prompt, "Auto-detect the source language")
	assert.NotContains(t, prompt, "The source language is")
}

func TestTranslateExplicitSource(t *testing.T) {
	f, gen := newTestFlows(`{"translatedText":"hello","detectedSourceLanguage":"es"}`)

	out, err := f.Translate(context.Background(), TranslateInput{
		TextToTranslate: "hola",
		TargetLanguage:  "English",
		SourceLanguage:  "Spanish",
	})
	require.NoError(t, err)
	assert.Empty(t, out.DetectedSourceLanguage)
	assert.Contains(t, gen.requests[0].Prompt, "The source language is Spanish.")
	assert.NotContains(t, gen.requests[0].Prompt, "Auto-detect")
}

func TestExtractTextSendsImage(t *testing.T) {
	f, gen := newTestFlows(`{"extractedText":"STOP"}`)
	img := []byte{0xff, 0xd8, 0xff}

	out, err := f.ExtractText(context.Background(), OCRInput{ImageDataURI: parser.EncodeDataURI("image/jpeg", img)})
	require.NoError(t, err)
	assert.Equal(t, "STOP", out.ExtractedText)

	require.Len(t, gen.requests[0].Media, 1)
	assert.Equal(t, "image/jpeg", gen.requests[0].Media[0].MIMEType)
	assert.Equal(t, img, gen.requests[0].Media[0].Data)
}

func TestExtractTextRejectsNonImage(t *testing.T) {
	f, gen := newTestFlows(`{"extractedText":"x"}`)

	_, err := f.ExtractText(context.Background(), OCRInput{ImageDataURI: parser.EncodeDataURI("application/pdf", []byte("%PDF"))})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, gen.requests)
}

func TestResearch(t *testing.T) {
	f, gen := newTestFlows(`{
		"summary": "Findings",
		"sources": [
			{"title": "Paper", "url": "arxiv.org/abs/1", "publication": "arXiv"},
			{"title": "", "url": "https://example.com"},
			{"title": "No link", "url": " "}
		],
		"followUpQuestions": ["a?", "b?", "c?"]
	}`)

	out, err := f.Research(context.Background(), ResearchInput{Topic: "error correction", FocusPoints: "surface codes"})
	require.NoError(t, err)
	assert.Equal(t, "Findings", out.Summary)
	assert.Equal(t, []parser.Source{
		{Title: "Paper", URL: "https://arxiv.org/abs/1", Publication: "arXiv"},
		{Title: parser.UntitledSource, URL: "https://example.com"},
	}, out.Sources)
	assert.Len(t, out.FollowUpQuestions, FollowUpCount)
	assert.Contains(t, gen.requests[0].Prompt, "surface codes")
}

func TestResearchRequiresThreeQuestions(t *testing.T) {
	f, _ := newTestFlows(`{"summary":"s","sources":[],"followUpQuestions":["only one?"]}`)

	_, err := f.Research(context.Background(), ResearchInput{Topic: "fusion energy"})
	assert.Error(t, err)
}

func TestGenerateContentDefaults(t *testing.T) {
	f, gen := newTestFlows(`{"generatedContent":"Dear team,"}`)

	out, err := f.GenerateContent(context.Background(), ContentInput{Prompt: "announce the release", MaxLength: 120})
	require.NoError(t, err)
	assert.Equal(t, "Dear team,", out.GeneratedContent)
	assert.Empty(t, out.Warnings)

	prompt := gen.requests[0].Prompt
	assert.Contains(t, prompt, "Content Type to Generate: generic")
	assert.Contains(t, prompt, "Desired Tone: professional")
	assert.Contains(t, prompt, "approximately 120")
	assert.NotContains(t, prompt, "Additional Custom Instructions")
}

func TestTrimFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(trimFence([]byte("  {\"a\":1}\n"))))
	assert.Equal(t, `{"a":1}`, string(trimFence([]byte("```json\n{\"a\":1}\n```"))))
	assert.Equal(t, `{"a":1}`, string(trimFence([]byte("```\n{\"a\":1}```"))))
}
