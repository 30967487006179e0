package types

// ExperienceEntry is a single work-history item extracted from a resume
type ExperienceEntry struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationEntry is a single education item extracted from a resume
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Field       string `json:"field,omitempty"`
}

// ParsedResume is the structured output of resume parsing
type ParsedResume struct {
	Filename   string            `json:"filename"`
	RawText    string            `json:"raw_text"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
}
