package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentally/ally/internal/models"
)

func TestParseHabit(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		goal   int
		icon   string
		errors int
	}{
		{"plain name", "Stretch", "Stretch", 1, "", 0},
		{"goal and icon", "Drink water goal:8 icon:GlassWater", "Drink water", 8, "GlassWater", 0},
		{"metadata first", "icon:BookOpen goal:2   Read  a chapter", "Read a chapter", 2, "BookOpen", 0},
		{"bad goal", "Walk goal:lots", "Walk", 1, "", 1},
		{"goal out of range", "Walk goal:0", "Walk", 1, "", 1},
		{"empty name", "goal:3", "", 3, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHabit(tt.input)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, tt.goal, got.Goal)
			assert.Equal(t, tt.icon, got.Icon)
			assert.Len(t, got.Errors, tt.errors)
		})
	}
}

func TestParseSources(t *testing.T) {
	text := `Go Memory Model | go.dev/ref/mem | The Go Blog

 | http://example.com/a
no separator here
Effective Go|https://go.dev/doc/effective_go`

	got := ParseSources(text)
	require.Len(t, got, 3)

	assert.Equal(t, Source{Title: "Go Memory Model", URL: "https://go.dev/ref/mem", Publication: "The Go Blog"}, got[0])
	assert.Equal(t, Source{Title: UntitledSource, URL: "http://example.com/a"}, got[1])
	assert.Equal(t, Source{Title: "Effective Go", URL: "https://go.dev/doc/effective_go"}, got[2])

	assert.Empty(t, ParseSources(""))
}

func TestDataURIRoundTrip(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	uri := EncodeDataURI("image/png", data)
	assert.Equal(t, "data:image/png;base64,iVBORw0K", uri)

	got, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MIMEType)
	assert.Equal(t, data, got.Data)
}

func TestParseDataURIRejects(t *testing.T) {
	for _, uri := range []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:;base64,AAAA",
		"data:image/png;base64,***",
		"data:image/png;base64,",
	} {
		_, err := ParseDataURI(uri)
		assert.ErrorIs(t, err, ErrInvalidDataURI, uri)
	}
}

func TestParseDeadline(t *testing.T) {
	today := models.Date{Year: 2025, Month: 3, Day: 10}

	tests := []struct {
		input string
		want  models.Date
	}{
		{"today", today},
		{"Tomorrow", models.Date{Year: 2025, Month: 3, Day: 11}},
		{"15/03/2025", models.Date{Year: 2025, Month: 3, Day: 15}},
		{"2025-04-01", models.Date{Year: 2025, Month: 4, Day: 1}},
		{"3 days", models.Date{Year: 2025, Month: 3, Day: 13}},
		{"in 2 weeks", models.Date{Year: 2025, Month: 3, Day: 24}},
	}
	for _, tt := range tests {
		got, err := ParseDeadline(tt.input, today)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	for _, bad := range []string{"", "end of next week", "31/02/2025", "1 fortnight"} {
		_, err := ParseDeadline(bad, today)
		assert.Error(t, err, bad)
	}
}

func TestFormatDeadline(t *testing.T) {
	today := models.Date{Year: 2025, Month: 3, Day: 10}

	assert.Equal(t, "", FormatDeadline("  ", today, today))
	assert.Equal(t, "📅 end of next week", FormatDeadline("end of next week", today, today))
	assert.Equal(t, "⚠️ OVERDUE (09/03/2025)", FormatDeadline("2025-03-09", today, today))
	assert.Equal(t, "🔥 Due today (10/03/2025)", FormatDeadline("today", today, today))
	assert.Equal(t, "📅 Due tomorrow (11/03/2025)", FormatDeadline("tomorrow", today, today))
	assert.Equal(t, "📅 Due 14/03/2025 (in 4 days)", FormatDeadline("4 days", today, today))
	assert.Equal(t, "📅 Due 31/03/2025", FormatDeadline("3 weeks", today, today))

	planned := models.Date{Year: 2025, Month: 3, Day: 8}
	assert.Equal(t, "⚠️ OVERDUE (09/03/2025)", FormatDeadline("tomorrow", planned, today))
}
