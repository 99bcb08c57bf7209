package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// ShimmerConfig controls the highlight that sweeps across a title
type ShimmerConfig struct {
	Enabled    bool
	Interval   time.Duration // time between frames
	WidthRatio float64       // highlight width relative to the text
	Frames     int           // frames per sweep
	PauseTicks int           // frames to hold between sweeps
}

func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:    true,
		Interval:   100 * time.Millisecond,
		WidthRatio: 0.25,
		Frames:     18,
		PauseTicks: 5,
	}
}

// shimmerTickMsg advances the shimmer by one frame
type shimmerTickMsg struct{}

// Shimmer sweeps a bright band across text, one frame per tick.
// The frame counter lives in the value so models can copy it.
type Shimmer struct {
	config ShimmerConfig
	frame  int
}

func NewShimmer(config ShimmerConfig) Shimmer {
	return Shimmer{config: config}
}

// Tick schedules the next frame, or nothing when disabled
func (s Shimmer) Tick() tea.Cmd {
	if !s.config.Enabled {
		return nil
	}
	return tea.Tick(s.config.Interval, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Advance moves to the next frame, wrapping after the pause
func (s Shimmer) Advance() Shimmer {
	s.frame = (s.frame + 1) % (s.config.Frames + s.config.PauseTicks)
	return s
}

// Reset restarts the sweep, e.g. when the selection changes
func (s Shimmer) Reset() Shimmer {
	s.frame = 0
	return s
}

// Render colors each rune by its distance from the band's center
func (s Shimmer) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	if !s.config.Enabled || s.frame >= s.config.Frames {
		return base.Render(text)
	}

	baseColor, _ := colorful.Hex(ColorSecondaryText)
	peakColor, _ := colorful.Hex(ColorShimmerPeak)

	n := float64(len(runes))
	travel := n * (1 + 2*s.config.WidthRatio)
	center := -n*s.config.WidthRatio + travel*float64(s.frame)/float64(s.config.Frames)
	sigma := math.Max(1, s.config.WidthRatio*n/2)

	out := ""
	for i, r := range runes {
		dx := float64(i) - center
		weight := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		c := baseColor.BlendRgb(peakColor, weight).Clamped()
		out += lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(string(r))
	}
	return out
}
