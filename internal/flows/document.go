package flows

import (
	"context"

	"google.golang.org/genai"
)

// NoAnswer is returned when the model gives no answer about a document
const NoAnswer = "I apologize, but I encountered an issue processing your request or the model did not return a valid answer."

type DocumentInput struct {
	DocumentContent string `json:"documentContent"`
	Question        string `json:"question"`
}

type DocumentOutput struct {
	Answer string `json:"answer"`
}

var documentPrompt = mustPrompt("document", `You are an AI assistant. Answer the user's question using *only* the document content below.
Do not use outside knowledge or make assumptions beyond what is written in the document.
If the answer is not in the document, say clearly that the information is not available in the provided text.

Document Content:
"""
{{.DocumentContent}}
"""

User's Question:
"{{.Question}}"

Put your answer in the 'answer' field.`)

var documentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"answer": stringSchema("The answer to the question, based solely on the provided document content."),
	},
	Required: []string{"answer"},
}

// AskDocument answers a question from the given document text only
func (f *Flows) AskDocument(ctx context.Context, in DocumentInput) (DocumentOutput, error) {
	if err := minLength("documentContent", in.DocumentContent, 1); err != nil {
		return DocumentOutput{}, err
	}
	if err := minLength("question", in.Question, 1); err != nil {
		return DocumentOutput{}, err
	}
	prompt, err := render(documentPrompt, in)
	if err != nil {
		return DocumentOutput{}, err
	}
	out, err := run[DocumentOutput](ctx, f, Request{Name: "document", Prompt: prompt, Schema: documentSchema})
	if err != nil {
		return DocumentOutput{}, err
	}
	if out == nil {
		return DocumentOutput{Answer: NoAnswer}, nil
	}
	return *out, nil
}
