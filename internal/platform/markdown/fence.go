package markdown

import "strings"

const fence = "```"

// RenderFence wraps content in a fenced code block tagged with lang.
func RenderFence(lang, content string) string {
	content = strings.TrimRight(content, "\n")
	return fence + lang + "\n" + content + "\n" + fence + "\n"
}

// ExtractFence returns the content of the first fenced block tagged with lang.
func ExtractFence(body, lang string) (string, bool) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if trimmed == fence+lang {
				start = i + 1
			}
			continue
		}
		if trimmed == fence {
			return strings.Join(lines[start:i], "\n"), true
		}
	}
	return "", false
}
