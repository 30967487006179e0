package gap

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/skillbridge/internal/llm"
	"github.com/jonathan/skillbridge/internal/prompts"
	"github.com/jonathan/skillbridge/internal/schemas"
	"github.com/jonathan/skillbridge/internal/types"
)

const (
	// maxJobTextForLLM bounds the prompt size for job-skill extraction
	maxJobTextForLLM = 4000
	// maxJobTextForGaps bounds the job description excerpt in the gap prompt
	maxJobTextForGaps = 2000
	// maxResumeSkillsForGaps bounds how many candidate skills go into the gap prompt
	maxResumeSkillsForGaps = 20
)

// extractedJobSkills mirrors the JSON shape the extraction prompt asks for.
type extractedJobSkills struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	DomainKnowledge []string `json:"domain_knowledge"`
	Tools           []string `json:"tools"`
}

// ExtractJobSkills pulls required and preferred skills out of a job
// description. With an LLM client the extraction is model-driven; without one,
// or when the model call or its output fails, a static keyword scan supplies
// the required list. Domain knowledge and tools count as required skills.
func ExtractJobSkills(ctx context.Context, client llm.Client, jobDescription string) *types.JobSkills {
	if client != nil {
		skills, err := extractJobSkillsWithLLM(ctx, client, jobDescription)
		if err != nil {
			log.Printf("Warning: LLM skill extraction failed: %v", err)
		} else {
			return skills
		}
	}

	return &types.JobSkills{Required: keywordScan(jobDescription)}
}

func extractJobSkillsWithLLM(ctx context.Context, client llm.Client, jobDescription string) (*types.JobSkills, error) {
	if len(jobDescription) > maxJobTextForLLM {
		jobDescription = jobDescription[:maxJobTextForLLM]
	}

	template := prompts.MustGet("gap.json", "extract-job-skills")
	prompt := prompts.Format(template, map[string]string{"JobDescription": jobDescription})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var extracted extractedJobSkills
	if err := json.Unmarshal([]byte(response), &extracted); err != nil {
		// Not a bare JSON object; salvage the first balanced object
		// embedded in the response.
		salvaged := llm.ExtractJSONObject(response)
		if salvaged == "" {
			return nil, err
		}
		if err := json.Unmarshal([]byte(salvaged), &extracted); err != nil {
			return nil, err
		}
	}

	required := make([]string, 0, len(extracted.RequiredSkills)+len(extracted.DomainKnowledge)+len(extracted.Tools))
	required = append(required, extracted.RequiredSkills...)
	required = append(required, extracted.DomainKnowledge...)
	required = append(required, extracted.Tools...)

	return &types.JobSkills{
		Required:  required,
		Preferred: extracted.PreferredSkills,
	}, nil
}

// AnalyzeGaps runs the full gap analysis: extract job skills, compute the
// overlap against the candidate's skills, and build prioritized gap details.
// An LLM client deepens the gap rationale when available; any model failure
// falls back to the deterministic prioritizer. The call never fails.
func AnalyzeGaps(ctx context.Context, client llm.Client, resumeSkills []string, jobDescription, jobTitle, domain string) *types.GapAnalysis {
	if jobTitle == "" {
		jobTitle = "Position"
	}
	if domain == "" {
		domain = "general"
	}

	jobSkills := ExtractJobSkills(ctx, client, jobDescription)
	matched, missing := ComputeOverlap(resumeSkills, jobSkills.All())

	var gapDetails []types.SkillGap
	if client != nil && len(missing) > 0 {
		details, err := describeGapsWithLLM(ctx, client, resumeSkills, missing, jobDescription, jobTitle, domain)
		if err != nil {
			log.Printf("Warning: LLM gap analysis failed: %v", err)
		} else {
			gapDetails = details
		}
	}
	if len(gapDetails) == 0 {
		gapDetails = Prioritize(missing, jobSkills.Required, jobTitle)
	}

	SortByPriority(gapDetails)

	topGaps := gapDetails
	if len(topGaps) > TopPriorityGaps {
		topGaps = topGaps[:TopPriorityGaps]
	}

	targetCount := len(matched) + len(missing)
	return &types.GapAnalysis{
		MatchedSkills:   matched,
		MissingSkills:   missing,
		GapDetails:      gapDetails,
		TopPriorityGaps: topGaps,
		ConfidenceScore: ConfidenceScore(len(matched), targetCount),
		Notes:           Notes(len(matched), targetCount, len(missing)),
	}
}

func describeGapsWithLLM(ctx context.Context, client llm.Client, resumeSkills, missingSkills []string, jobDescription, jobTitle, domain string) ([]types.SkillGap, error) {
	if len(resumeSkills) > maxResumeSkillsForGaps {
		resumeSkills = resumeSkills[:maxResumeSkillsForGaps]
	}
	if len(jobDescription) > maxJobTextForGaps {
		jobDescription = jobDescription[:maxJobTextForGaps]
	}

	template := prompts.MustGet("gap.json", "describe-gaps")
	prompt := prompts.Format(template, map[string]string{
		"JobTitle":       jobTitle,
		"Domain":         domain,
		"ResumeSkills":   strings.Join(resumeSkills, ", "),
		"MissingSkills":  strings.Join(missingSkills, ", "),
		"JobDescription": jobDescription,
	})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateGapDetails(response); err != nil {
		return nil, err
	}

	var details []types.SkillGap
	if err := json.Unmarshal([]byte(response), &details); err != nil {
		return nil, err
	}

	if len(details) > MaxGapDetails {
		details = details[:MaxGapDetails]
	}
	return details, nil
}
