package gap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillbridge/internal/llm"
	"github.com/jonathan/skillbridge/internal/types"
)

// MockLLMClient implements llm.Client for testing.
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

const mlJobDescription = `We are hiring a Data Scientist.
Required: Python, machine learning, SQL, statistics.
Experience with clinical trials and health data is a plus.`

func TestExtractJobSkills_KeywordFallback(t *testing.T) {
	skills := ExtractJobSkills(context.Background(), nil, mlJobDescription)
	require.NotNil(t, skills)

	assert.Contains(t, skills.Required, "python")
	assert.Contains(t, skills.Required, "machine learning")
	assert.Contains(t, skills.Required, "statistics")
	assert.Contains(t, skills.Required, "clinical trials")
	assert.NotContains(t, skills.Required, "sql")
	assert.NotContains(t, skills.Required, "SQL")
	assert.Empty(t, skills.Preferred)
}

func TestExtractJobSkills_UppercaseKeywordsNeverMatch(t *testing.T) {
	// "RCT", "R" and "SQL" are compared verbatim against the lowercased
	// description, so they are never reported.
	skills := ExtractJobSkills(context.Background(), nil, "We need SQL and R and RCT experience.")
	require.NotNil(t, skills)
	assert.Empty(t, skills.Required)
}

func TestExtractJobSkills_LLM(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
			return `{
				"required_skills": ["python", "machine learning"],
				"preferred_skills": ["docker"],
				"domain_knowledge": ["clinical trials"],
				"tools": ["sql"]
			}`, nil
		},
	}

	skills := ExtractJobSkills(context.Background(), mock, mlJobDescription)
	require.NotNil(t, skills)

	// Domain knowledge and tools fold into the required list
	assert.Equal(t, []string{"python", "machine learning", "clinical trials", "sql"}, skills.Required)
	assert.Equal(t, []string{"docker"}, skills.Preferred)
}

func TestExtractJobSkills_LLMFailureFallsBack(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
			return "", errors.New("model unavailable")
		},
	}

	skills := ExtractJobSkills(context.Background(), mock, mlJobDescription)
	require.NotNil(t, skills)
	assert.Contains(t, skills.Required, "python")
}

func TestExtractJobSkills_SalvagesEmbeddedObject(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
			return `Sure, here is the breakdown: {"required_skills": ["golang"], "preferred_skills": ["docker"]} Let me know!`, nil
		},
	}

	skills := ExtractJobSkills(context.Background(), mock, mlJobDescription)
	require.NotNil(t, skills)

	assert.Equal(t, []string{"golang"}, skills.Required)
	assert.Equal(t, []string{"docker"}, skills.Preferred)
}

func TestExtractJobSkills_MalformedJSONFallsBack(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
			return "not json at all", nil
		},
	}

	skills := ExtractJobSkills(context.Background(), mock, mlJobDescription)
	require.NotNil(t, skills)
	assert.Contains(t, skills.Required, "python")
}

func TestAnalyzeGaps_Deterministic(t *testing.T) {
	analysis := AnalyzeGaps(
		context.Background(), nil,
		[]string{"python", "data science"},
		"Required: python, machine learning, statistics",
		"ML Engineer", "biotech",
	)
	require.NotNil(t, analysis)

	assert.Equal(t, []string{"python"}, analysis.MatchedSkills)
	assert.Equal(t, []string{"machine learning", "statistics"}, analysis.MissingSkills)
	assert.InDelta(t, 33.33, analysis.ConfidenceScore, 0.001)
	assert.Equal(t, "Found 1 matching skills out of 3 required. Identified 2 skill gaps to address.", analysis.Notes)

	require.Len(t, analysis.GapDetails, 2)
	assert.Equal(t, "machine learning", analysis.GapDetails[0].Skill)
	assert.Equal(t, 1, analysis.GapDetails[0].Priority)
	assert.Equal(t, types.ImportanceImportant, analysis.GapDetails[0].Importance)
	assert.Contains(t, analysis.GapDetails[0].Reason, "ML Engineer")

	assert.Equal(t, analysis.GapDetails, analysis.TopPriorityGaps)
}

func TestAnalyzeGaps_EmptyJobDescription(t *testing.T) {
	analysis := AnalyzeGaps(context.Background(), nil, []string{"python"}, "", "Engineer", "general")
	require.NotNil(t, analysis)

	assert.Empty(t, analysis.MatchedSkills)
	assert.Empty(t, analysis.MissingSkills)
	assert.Equal(t, 0.0, analysis.ConfidenceScore)
	assert.Empty(t, analysis.GapDetails)
}

func TestAnalyzeGaps_LLMGapDetails(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
			if tier == llm.TierStandard {
				return `{"required_skills": ["python", "machine learning"]}`, nil
			}
			return `[
				{"skill": "machine learning", "importance": "critical", "priority": 1,
				 "reason": "Core modeling skill", "related_skills": ["statistics"]}
			]`, nil
		},
	}

	analysis := AnalyzeGaps(context.Background(), mock, []string{"python"}, mlJobDescription, "ML Engineer", "biotech")
	require.NotNil(t, analysis)

	require.Len(t, analysis.GapDetails, 1)
	assert.Equal(t, types.ImportanceCritical, analysis.GapDetails[0].Importance)
	assert.Equal(t, "Core modeling skill", analysis.GapDetails[0].Reason)
	assert.Equal(t, []string{"statistics"}, analysis.GapDetails[0].RelatedSkills)
}

func TestAnalyzeGaps_LLMGapFailureFallsBack(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
			if tier == llm.TierStandard {
				return `{"required_skills": ["python", "machine learning"]}`, nil
			}
			return "", errors.New("timeout")
		},
	}

	analysis := AnalyzeGaps(context.Background(), mock, []string{"python"}, mlJobDescription, "ML Engineer", "biotech")
	require.NotNil(t, analysis)

	// Deterministic prioritizer supplies the details
	require.Len(t, analysis.GapDetails, 1)
	assert.Equal(t, "machine learning", analysis.GapDetails[0].Skill)
	assert.Equal(t, "Required for ML Engineer position", analysis.GapDetails[0].Reason)
}

func TestAnalyzeGaps_TopGapsBounded(t *testing.T) {
	jobDescription := "Required: python, machine learning, sql, statistics, pandas, numpy, pytorch, tensorflow"

	analysis := AnalyzeGaps(context.Background(), nil, nil, jobDescription, "Engineer", "general")
	require.NotNil(t, analysis)

	assert.Greater(t, len(analysis.GapDetails), TopPriorityGaps)
	assert.Len(t, analysis.TopPriorityGaps, TopPriorityGaps)
	assert.Equal(t, analysis.GapDetails[:TopPriorityGaps], analysis.TopPriorityGaps)
}
