package skills

import "strings"

const frontmatterDelimiter = "---"

// ParseFrontmatter extracts the key/value pairs from a frontmatter block
// into a flat string map. It is deliberately tolerant: content without an
// opening delimiter, or without a closing one, yields an empty map rather
// than an error, since a bad manifest must not block the rest of a scan.
//
// Within the block, blank lines and '#' comments are skipped. A line
// containing ':' that does not start with '-' begins a new key; the value
// has surrounding whitespace and quotes trimmed. Any other non-blank line
// is folded into the current key's value, joined with single spaces, which
// covers YAML folded scalars without a structured parser.
func ParseFrontmatter(content string) map[string]string {
	meta := make(map[string]string)
	if !strings.HasPrefix(content, frontmatterDelimiter) {
		return meta
	}
	end := strings.Index(content[len(frontmatterDelimiter):], frontmatterDelimiter)
	if end == -1 {
		return meta
	}
	block := content[len(frontmatterDelimiter) : len(frontmatterDelimiter)+end]

	var currentKey string
	var currentVal []string

	commit := func() {
		if currentKey != "" && len(currentVal) > 0 {
			meta[currentKey] = strings.TrimSpace(strings.Join(currentVal, " "))
		}
	}

	for _, line := range strings.Split(block, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		if strings.Contains(stripped, ":") && !strings.HasPrefix(stripped, "-") {
			commit()

			key, value, _ := strings.Cut(stripped, ":")
			currentKey = strings.TrimSpace(key)
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			if value != "" {
				currentVal = []string{value}
			} else {
				currentVal = nil
			}
		} else if currentKey != "" {
			currentVal = append(currentVal, stripped)
		}
	}

	commit()
	return meta
}
