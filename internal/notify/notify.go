// Package notify delivers short user-facing toasts. Delivery is fire and
// forget: a notifier never fails the operation that raised the toast.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is a short notification with an optional description
type Toast struct {
	Title       string
	Description string
	Kind        Kind
}

func Info(title, description string) Toast {
	return Toast{Title: title, Description: description, Kind: KindInfo}
}

func Success(title, description string) Toast {
	return Toast{Title: title, Description: description, Kind: KindSuccess}
}

func Error(title, description string) Toast {
	return Toast{Title: title, Description: description, Kind: KindError}
}

type Notifier interface {
	Notify(Toast)
}

// Styles colors each part of a terminal toast
type Styles struct {
	Info        lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Description lipgloss.Style
}

// Terminal writes each toast as one styled line
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	styles Styles
}

func NewTerminal(w io.Writer, styles Styles) *Terminal {
	return &Terminal{w: w, styles: styles}
}

func (t *Terminal) Notify(toast Toast) {
	var icon string
	var style lipgloss.Style
	switch toast.Kind {
	case KindSuccess:
		icon, style = "✅", t.styles.Success
	case KindError:
		icon, style = "❌", t.styles.Error
	default:
		icon, style = "💡", t.styles.Info
	}

	line := icon + " " + style.Render(toast.Title)
	if toast.Description != "" {
		line += " " + t.styles.Description.Render(toast.Description)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, line)
}

// Recorder keeps every toast it receives
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

// Toasts returns a copy of the recorded toasts in arrival order
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Discard drops every toast
type Discard struct{}

func (Discard) Notify(Toast) {}
