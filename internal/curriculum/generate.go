package curriculum

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/jonathan/skillbridge/internal/llm"
	"github.com/jonathan/skillbridge/internal/prompts"
	"github.com/jonathan/skillbridge/internal/schemas"
	"github.com/jonathan/skillbridge/internal/types"
)

const (
	// generateTimeout bounds a single generative curriculum call.
	generateTimeout = 30 * time.Second
	// maxExistingSkillsForPrompt bounds the candidate-skill list in prompts.
	maxExistingSkillsForPrompt = 15
)

// GenerateOrAssemble produces a training program, preferring model generation
// when a client is available. The generated payload must parse and validate
// against the curriculum schema; any API error, parse failure, or schema
// violation discards it and the deterministic assembler supplies the result.
// The returned curriculum is never nil.
func GenerateOrAssemble(ctx context.Context, client llm.Client, gaps []types.SkillGap, jobTitle, domain string, existingSkills []string) *types.Curriculum {
	jobTitle, domain = applyDefaults(jobTitle, domain)

	if client != nil && len(gaps) > 0 {
		generated, err := generateWithLLM(ctx, client, gaps, jobTitle, domain, existingSkills)
		if err != nil {
			log.Printf("Warning: LLM curriculum generation failed: %v, using template-based generation", err)
		} else {
			return generated
		}
	}

	return Assemble(gaps, jobTitle, domain)
}

// GenerateOrAssembleProject is the two-phase variant of GenerateOrAssemble.
func GenerateOrAssembleProject(ctx context.Context, client llm.Client, gaps []types.SkillGap, project *types.ProjectContext, existingSkills []string) *types.Curriculum {
	if client != nil {
		generated, err := generateProjectWithLLM(ctx, client, gaps, project, existingSkills)
		if err != nil {
			log.Printf("Warning: LLM project curriculum generation failed: %v, using template-based generation", err)
		} else {
			return generated
		}
	}

	return AssembleProject(gaps, project)
}

func generateWithLLM(ctx context.Context, client llm.Client, gaps []types.SkillGap, jobTitle, domain string, existingSkills []string) (*types.Curriculum, error) {
	template := prompts.MustGet("curriculum.json", "generate-curriculum")
	prompt := prompts.Format(template, map[string]string{
		"JobTitle":       jobTitle,
		"Domain":         domain,
		"ExistingSkills": strings.Join(boundSkills(existingSkills), ", "),
		"PriorityGaps":   describeGaps(gaps),
	})

	return runGeneration(ctx, client, prompt)
}

func generateProjectWithLLM(ctx context.Context, client llm.Client, gaps []types.SkillGap, project *types.ProjectContext, existingSkills []string) (*types.Curriculum, error) {
	if project == nil {
		project = &types.ProjectContext{}
	}

	template := prompts.MustGet("curriculum.json", "generate-project-curriculum")
	prompt := prompts.Format(template, map[string]string{
		"ProjectName":        project.Name,
		"ProjectDescription": project.Description,
		"Organization":       project.Organization,
		"TeamRole":           project.TeamRole,
		"TechStack":          strings.Join(project.TechStack, ", "),
		"Goals":              strings.Join(project.Goals, "; "),
		"Timeline":           project.Timeline,
		"ExistingSkills":     strings.Join(boundSkills(existingSkills), ", "),
		"PriorityGaps":       describeGaps(gaps),
	})

	return runGeneration(ctx, client, prompt)
}

// runGeneration executes the model call under a bounded timeout and accepts
// the payload only when it validates against the curriculum schema.
func runGeneration(ctx context.Context, client llm.Client, prompt string) (*types.Curriculum, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	response, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateCurriculum(response); err != nil {
		return nil, err
	}

	var generated types.Curriculum
	if err := json.Unmarshal([]byte(response), &generated); err != nil {
		return nil, err
	}
	return &generated, nil
}

// describeGaps renders the priority gaps as JSON for prompt interpolation.
func describeGaps(gaps []types.SkillGap) string {
	if len(gaps) > MaxModules {
		gaps = gaps[:MaxModules]
	}
	encoded, err := json.Marshal(gaps)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func boundSkills(skills []string) []string {
	if len(skills) > maxExistingSkillsForPrompt {
		skills = skills[:maxExistingSkillsForPrompt]
	}
	return skills
}
