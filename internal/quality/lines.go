package quality

// CountLines counts lines the way Python's str.splitlines does: every line
// boundary ends a line, and a trailing boundary does not start a new one.
// \r\n counts as a single boundary.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	lines := 0
	open := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if isLineBoundary(r) {
			lines++
			open = false
			if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			continue
		}
		open = true
	}
	if open {
		lines++
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
