package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillbridge/internal/types"
)

const pipelineResume = `Jane Doe

Skills
Python, SQL, Excel

Experience
Data Analyst at Acme Corp (2021-2024)
- Built reporting dashboards

Education
B.S. Computer Science, State University, 2021
`

const pipelineJob = `Machine Learning Intern

We are looking for an intern with python, machine learning and sql
experience. Knowledge of statistics is a plus.
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunPipeline_Deterministic(t *testing.T) {
	opts := RunOptions{
		ResumePath: writeTempFile(t, "resume.txt", pipelineResume),
		JobPath:    writeTempFile(t, "job.txt", pipelineJob),
		JobTitle:   "ML Intern",
		Domain:     "biotech",
		SkipEnrich: true,
	}

	result, err := RunPipeline(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.NotNil(t, result.Resume)
	assert.Contains(t, result.Resume.Skills, "python")
	assert.Contains(t, result.Resume.Skills, "sql")

	require.NotNil(t, result.JobSkills)
	assert.Contains(t, result.JobSkills.Required, "python")
	assert.Contains(t, result.JobSkills.Required, "machine learning")

	require.NotNil(t, result.Analysis)
	assert.Contains(t, result.Analysis.MatchedSkills, "python")
	assert.Contains(t, result.Analysis.MissingSkills, "machine learning")
	assert.NotEmpty(t, result.Analysis.Notes)

	require.NotNil(t, result.Curriculum)
	assert.NotEmpty(t, result.Curriculum.Modules)
	assert.Contains(t, result.Curriculum.Title, "ML Intern")
}

func TestRunPipeline_EmitsProgress(t *testing.T) {
	var mu sync.Mutex
	var steps []string
	opts := RunOptions{
		ResumePath: writeTempFile(t, "resume.txt", pipelineResume),
		JobPath:    writeTempFile(t, "job.txt", pipelineJob),
		SkipEnrich: true,
		OnProgress: func(event ProgressEvent) {
			mu.Lock()
			steps = append(steps, event.Step)
			mu.Unlock()
		},
	}

	_, err := RunPipeline(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, steps, StepJobPosting)
	assert.Contains(t, steps, StepResume)
	assert.Contains(t, steps, StepJobSkills)
	assert.Contains(t, steps, StepGapReport)
	assert.Contains(t, steps, StepCurriculum)
	assert.NotContains(t, steps, StepEnrichment)
}

func TestRunPipeline_ProjectMode(t *testing.T) {
	opts := RunOptions{
		ResumePath: writeTempFile(t, "resume.txt", pipelineResume),
		JobPath:    writeTempFile(t, "job.txt", pipelineJob),
		SkipEnrich: true,
		Project: &types.ProjectContext{
			Name:        "Data Platform",
			Description: "Internal analytics platform",
			TeamRole:    "Backend Engineer",
			TechStack:   []string{"Go", "PostgreSQL"},
		},
	}

	result, err := RunPipeline(context.Background(), opts)
	require.NoError(t, err)

	require.NotNil(t, result.Curriculum)
	assert.Contains(t, result.Curriculum.Title, "Data Platform")
	assert.Len(t, result.Curriculum.Phases, 2)
	assert.Len(t, result.Curriculum.Milestones, 3)
}

func TestRunPipeline_MissingResume(t *testing.T) {
	opts := RunOptions{
		ResumePath: filepath.Join(t.TempDir(), "nope.txt"),
		JobPath:    writeTempFile(t, "job.txt", pipelineJob),
		SkipEnrich: true,
	}

	_, err := RunPipeline(context.Background(), opts)
	assert.Error(t, err)
}

func TestRunPipeline_UnsupportedResumeFormat(t *testing.T) {
	opts := RunOptions{
		ResumePath: writeTempFile(t, "resume.docx", "binary-ish"),
		JobPath:    writeTempFile(t, "job.txt", pipelineJob),
		SkipEnrich: true,
	}

	_, err := RunPipeline(context.Background(), opts)
	assert.Error(t, err)
}
