// Package flows implements the AI-backed text operations. Each flow
// validates its input, renders a prompt, makes one Generator call with a
// response schema, and decodes the structured JSON answer.
package flows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	// ErrValidation marks input rejected before any model call
	ErrValidation = errors.New("invalid input")
	// ErrEmptyOutput marks a model call that returned nothing usable
	ErrEmptyOutput = errors.New("model returned no output")
)

// Media is an inline attachment such as an image for OCR
type Media struct {
	MIMEType string
	Data     []byte
}

// Request is one structured generation call
type Request struct {
	Name   string
	Prompt string
	Media  []Media
	Schema *genai.Schema
}

// Generator performs a single model call and returns the raw JSON output.
// A nil result with a nil error means the model produced no output.
type Generator interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}

// Flows runs the individual capabilities against one Generator
type Flows struct {
	gen    Generator
	logger *zap.Logger
}

func New(gen Generator, logger *zap.Logger) *Flows {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flows{gen: gen, logger: logger.Named("flows")}
}

// run calls the generator and decodes its output into O.
// It returns nil, nil when the model produced nothing.
func run[O any](ctx context.Context, f *Flows, req Request) (*O, error) {
	start := time.Now()
	raw, err := f.gen.Generate(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		f.logger.Warn("flow failed",
			zap.String("flow", req.Name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", req.Name, err)
	}

	raw = trimFence(raw)
	if len(raw) == 0 || string(raw) == "null" {
		f.logger.Warn("flow returned no output", zap.String("flow", req.Name))
		return nil, nil
	}

	var out O
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s: failed to decode output: %w", req.Name, err)
	}
	f.logger.Debug("flow completed",
		zap.String("flow", req.Name),
		zap.Duration("elapsed", elapsed),
		zap.Int("bytes", len(raw)))
	return &out, nil
}

// trimFence strips whitespace and a ```json fence some models add anyway
func trimFence(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if !bytes.HasPrefix(raw, []byte("```")) {
		return raw
	}
	raw = bytes.TrimPrefix(raw, []byte("```"))
	raw = bytes.TrimPrefix(raw, []byte("json"))
	raw = bytes.TrimSuffix(bytes.TrimSpace(raw), []byte("```"))
	return bytes.TrimSpace(raw)
}

func validationError(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

// minLength checks the trimmed rune length of a required field
func minLength(field, value string, n int) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		if n == 1 {
			return validationError(field, "cannot be empty")
		}
		return validationError(field, fmt.Sprintf("must be at least %d characters", n))
	}
	return nil
}

func stringSchema(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func int64Ptr(v int64) *int64 {
	return &v
}
