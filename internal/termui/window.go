package termui

import "strings"

// Window returns at most height lines of content, scrolled so the last line
// containing anchor is visible.
func Window(content string, height int, anchor string) string {
	lines := strings.Split(content, "\n")
	if height <= 0 || len(lines) <= height {
		return content
	}
	target := 0
	if anchor != "" {
		for i, line := range lines {
			if strings.Contains(line, anchor) {
				target = i
			}
		}
	}
	start := max(0, target-height/2)
	start = min(start, len(lines)-height)
	return strings.Join(lines[start:start+height], "\n")
}
