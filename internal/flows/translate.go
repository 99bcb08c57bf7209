package flows

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// AutoDetect asks the model to detect the source language
const AutoDetect = "auto"

type TranslateInput struct {
	TextToTranslate string `json:"textToTranslate"`
	TargetLanguage  string `json:"targetLanguage"`
	SourceLanguage  string `json:"sourceLanguage,omitempty"`
}

type TranslateOutput struct {
	TranslatedText         string `json:"translatedText"`
	DetectedSourceLanguage string `json:"detectedSourceLanguage,omitempty"`
}

var translatePrompt = mustPrompt("translate", `You are an expert multilingual translator.
Translate the following text into {{.TargetLanguage}}.
{{if .SourceLanguage}}
The source language is {{.SourceLanguage}}.
{{else}}
Auto-detect the source language and put its ISO 639-1 code (e.g. "en", "es") in the 'detectedSourceLanguage' field.
{{end}}
Text to translate:
"""
{{.TextToTranslate}}
"""

Put the translation in the 'translatedText' field.`)

var translateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"translatedText":         stringSchema("The translated text in the target language."),
		"detectedSourceLanguage": stringSchema("ISO 639-1 code of the detected source language, only when auto-detection was used."),
	},
	Required: []string{"translatedText"},
}

// Translate translates text into the target language. A source language
// of "auto" (or empty) lets the model detect it.
func (f *Flows) Translate(ctx context.Context, in TranslateInput) (TranslateOutput, error) {
	if err := minLength("textToTranslate", in.TextToTranslate, 1); err != nil {
		return TranslateOutput{}, err
	}
	if err := minLength("targetLanguage", in.TargetLanguage, 2); err != nil {
		return TranslateOutput{}, err
	}
	if strings.EqualFold(strings.TrimSpace(in.SourceLanguage), AutoDetect) {
		in.SourceLanguage = ""
	}
	prompt, err := render(translatePrompt, in)
	if err != nil {
		return TranslateOutput{}, err
	}
	out, err := run[TranslateOutput](ctx, f, Request{Name: "translate", Prompt: prompt, Schema: translateSchema})
	if err != nil {
		return TranslateOutput{}, err
	}
	if out == nil {
		return TranslateOutput{}, ErrEmptyOutput
	}
	if in.SourceLanguage != "" {
		out.DetectedSourceLanguage = ""
	}
	return *out, nil
}
