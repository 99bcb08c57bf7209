package flows

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/contentally/ally/internal/parser"
)

type OCRInput struct {
	ImageDataURI string `json:"imageDataUri"`
}

type OCROutput struct {
	ExtractedText string `json:"extractedText"`
}

var ocrPrompt = mustPrompt("ocr", `You are an Optical Character Recognition (OCR) service.
Analyze the attached image and extract all visible text.
Present the extracted text as a single block of plain text.
If no text is found, return an empty string in the 'extractedText' field.`)

var ocrSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"extractedText": stringSchema("The text extracted from the image, or an empty string when there is none."),
	},
	Required: []string{"extractedText"},
}

// ExtractText runs OCR over an image passed as a base64 data URI.
// An empty model response yields empty text rather than an error.
func (f *Flows) ExtractText(ctx context.Context, in OCRInput) (OCROutput, error) {
	uri, err := parser.ParseDataURI(in.ImageDataURI)
	if err != nil {
		return OCROutput{}, validationError("imageDataUri", err.Error())
	}
	if !strings.HasPrefix(uri.MIMEType, "image/") {
		return OCROutput{}, validationError("imageDataUri", fmt.Sprintf("must be an image, got %s", uri.MIMEType))
	}
	prompt, err := render(ocrPrompt, in)
	if err != nil {
		return OCROutput{}, err
	}
	out, err := run[OCROutput](ctx, f, Request{
		Name:   "ocr",
		Prompt: prompt,
		Media:  []Media{{MIMEType: uri.MIMEType, Data: uri.Data}},
		Schema: ocrSchema,
	})
	if err != nil {
		return OCROutput{}, err
	}
	if out == nil {
		return OCROutput{ExtractedText: ""}, nil
	}
	return *out, nil
}
