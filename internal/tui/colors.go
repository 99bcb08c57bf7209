package tui

// Color constants for the ally TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles, user input
	ColorSecondaryText = "#B1B8C7" // Subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, active borders
	ColorAccentBright = "#A78BFA" // Highlights, current step
	ColorShimmerPeak  = "#EAE6FF" // Brightest point of the shimmer

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)
