package chatroom

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values.
type Theme struct {
	UserMsg   int // User bubble accent
	Assistant int // Assistant bubble accent
	Selected  int // Selected table row
	Error     int // Validation and storage errors
	Success   int // Active status, copy confirmations
	Muted     int // Status bar, placeholders, timestamps
	CodeBg    int // Code block background
	Accent    int // Headings, links, sort markers
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   6,
		Assistant: 7,
		Selected:  4,
		Error:     1,
		Success:   2,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
	}
}
