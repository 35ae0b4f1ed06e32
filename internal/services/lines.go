package services

import "strings"

// splitLines normalizes vault text into its lines: CRLF counts as LF, the
// text is trimmed at both ends and whitespace-only lines are dropped. The
// remaining lines are kept as written.
func splitLines(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// storedLines splits storage that was already normalized on write.
func storedLines(storage string) []string {
	if storage == "" {
		return nil
	}
	return strings.Split(storage, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// NormalizeText returns text the way a vault stores it.
func NormalizeText(text string) string {
	return joinLines(splitLines(text))
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
