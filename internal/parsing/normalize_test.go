package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Python", "python"},
		{"trim whitespace", "  SQL  ", "sql"},
		{"alias ml", "ML", "machine learning"},
		{"alias dl", "dl", "deep learning"},
		{"alias ai", "AI", "artificial intelligence"},
		{"alias rct", "RCT", "randomized controlled trials"},
		{"alias rcts", "RCTs", "randomized controlled trials"},
		{"no alias for phrase", "ml ops", "ml ops"},
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkill(tt.input))
		})
	}
}

func TestNormalizeSkill_Idempotent(t *testing.T) {
	inputs := []string{"ML", "Python", "  RCTs ", "deep learning", ""}
	for _, in := range inputs {
		once := NormalizeSkill(in)
		assert.Equal(t, once, NormalizeSkill(once))
	}
}

func TestNormalizeSkills(t *testing.T) {
	result := NormalizeSkills([]string{"Python", "ML", "ML"})
	assert.Equal(t, []string{"python", "machine learning", "machine learning"}, result)
}

func TestNormalizeSkills_Empty(t *testing.T) {
	assert.Empty(t, NormalizeSkills(nil))
	assert.Empty(t, NormalizeSkills([]string{}))
}

func TestDedupeSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "case-insensitive duplicates",
			input:    []string{"Python", "python", "PYTHON"},
			expected: []string{"python"},
		},
		{
			name:     "alias collapses with canonical form",
			input:    []string{"ML", "machine learning", "sql"},
			expected: []string{"machine learning", "sql"},
		},
		{
			name:     "first occurrence order preserved",
			input:    []string{"sql", "python", "SQL", "r"},
			expected: []string{"sql", "python", "r"},
		},
		{
			name:     "empty entries dropped",
			input:    []string{"", "  ", "python"},
			expected: []string{"python"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeSkills(tt.input))
		})
	}
}
