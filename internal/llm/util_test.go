package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "As requested, here is the JSON:\n{\"skill\": \"sql\"}",
			expected: `{"skill": "sql"}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the skills:\n[\"python\", \"sql\"]",
			expected: `["python", "sql"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			expected: `{"key": "value"}`,
		},
		{
			name:     "nested objects",
			input:    "Output:\n{\"outer\": {\"inner\": \"value\"}}",
			expected: `{"outer": {"inner": "value"}}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"message\": \"He said \\\"hello\\\"\"}",
			expected: `{"message": "He said \"hello\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	input := `The gaps are: [{"skill": "sql", "priority": 1}] as requested.`
	expected := `[{"skill": "sql", "priority": 1}]`
	if got := ExtractJSONArray(input); got != expected {
		t.Errorf("ExtractJSONArray() = %q, want %q", got, expected)
	}

	if got := ExtractJSONArray("no array here"); got != "" {
		t.Errorf("ExtractJSONArray() = %q, want empty", got)
	}
}

func TestExtractJSONObject(t *testing.T) {
	input := `prefix {"a": {"b": [1, 2]}} suffix`
	expected := `{"a": {"b": [1, 2]}}`
	if got := ExtractJSONObject(input); got != expected {
		t.Errorf("ExtractJSONObject() = %q, want %q", got, expected)
	}

	if got := ExtractJSONObject("unbalanced { \"a\": 1"); got != "" {
		t.Errorf("ExtractJSONObject() = %q, want empty for unbalanced input", got)
	}
}
