package ragchat

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg int // User message accent
	Naive   int // Naive track header
	Hybrid  int // Hybrid track header
	Source  int // Reference card header
	Error   int // Error messages
	Success int // Success indicators
	Muted   int // Status bar, placeholders
	Accent  int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		Naive:   8,
		Hybrid:  6,
		Source:  3,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
	}
}
