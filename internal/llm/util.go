// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock strips markdown code fences and conversational preamble from
// LLM responses. Models often wrap JSON in ```json ... ``` blocks or prepend
// explanatory text even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle preamble/trailing prose around a bare JSON object or array
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		objIdx := strings.Index(text, "{")
		arrIdx := strings.Index(text, "[")
		start := -1
		open := byte(0)
		switch {
		case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
			start, open = objIdx, '{'
		case arrIdx >= 0:
			start, open = arrIdx, '['
		}
		if start >= 0 {
			if extracted := extractBalanced(text[start:], open); extracted != "" {
				return extracted
			}
		}
	} else if extracted := extractBalanced(text, text[0]); extracted != "" {
		return extracted
	}

	return text
}

// ExtractJSONObject returns the first balanced JSON object found in text,
// or empty string if none exists.
func ExtractJSONObject(text string) string {
	if idx := strings.Index(text, "{"); idx >= 0 {
		return extractBalanced(text[idx:], '{')
	}
	return ""
}

// ExtractJSONArray returns the first balanced JSON array found in text,
// or empty string if none exists.
func ExtractJSONArray(text string) string {
	if idx := strings.Index(text, "["); idx >= 0 {
		return extractBalanced(text[idx:], '[')
	}
	return ""
}

// extractBalanced scans text (which must start with open) and returns the
// substring up to the matching close delimiter, honoring string literals
// and escapes.
func extractBalanced(text string, open byte) string {
	var close byte
	switch open {
	case '{':
		close = '}'
	case '[':
		close = ']'
	default:
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// skip delimiters inside strings
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
