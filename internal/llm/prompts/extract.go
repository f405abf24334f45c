package prompts

import "strings"

// ExtractCode extracts code from an LLM response by stripping markdown
// code fences. If the response contains a fence tagged with one of the
// given languages, its content wins; otherwise the first generic fence;
// otherwise the raw response. Interior indentation is preserved — the
// pseudocode dialect's blocks are indentation-scoped.
func ExtractCode(response string, langs ...string) string {
	for _, lang := range langs {
		if code := extractFence(response, lang); code != "" {
			return code
		}
	}

	if code := extractFence(response, ""); code != "" {
		return code
	}

	return strings.TrimSpace(response)
}

// extractFence finds and extracts content from the first code fence
// with the given language tag. Returns "" if not found.
func extractFence(text, lang string) string {
	opener := "```"
	if lang != "" {
		opener = "```" + lang
	}

	lines := strings.Split(text, "\n")
	var result []string
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !inFence {
			if strings.HasPrefix(trimmed, opener) {
				inFence = true
				continue
			}
		} else {
			if trimmed == "```" {
				return strings.TrimRight(strings.Join(result, "\n"), "\n")
			}
			result = append(result, line)
		}
	}

	// Unclosed fence — return what we found anyway.
	if inFence && len(result) > 0 {
		return strings.TrimRight(strings.Join(result, "\n"), "\n")
	}

	return ""
}
