package profile

import (
	"strings"
)

const (
	ImprovementCritical    = "critical"
	ImprovementRecommended = "recommended"

	// NotAvailable marks job listing fields the job index did not provide.
	NotAvailable = "N/A"
)

// CandidateProfile is the structured view of a resume returned by the oracle
// and enriched with matching job listings.
type CandidateProfile struct {
	PersonalInfo     PersonalInfo     `json:"personal_info" mapstructure:"personal_info"`
	PredictedRole    string           `json:"predicted_role" mapstructure:"predicted_role"`
	ExecutiveSummary string           `json:"executive_summary" mapstructure:"executive_summary"`
	Skills           []string         `json:"skills" mapstructure:"skills"`
	ExperienceYears  string           `json:"experience_years" mapstructure:"experience_years"`
	Education        []Education      `json:"education" mapstructure:"education"`
	Certifications   []Certification  `json:"certifications" mapstructure:"certifications"`
	Projects         []Project        `json:"projects" mapstructure:"projects"`
	WorkExperience   []WorkExperience `json:"work_experience" mapstructure:"work_experience"`
	Achievements     []string         `json:"achievements" mapstructure:"achievements"`
	Improvements     []Improvement    `json:"improvements" mapstructure:"improvements"`
	SearchParams     SearchParams     `json:"search_params" mapstructure:"search_params"`
	Jobs             []JobListing     `json:"jobs" mapstructure:"-"`
}

type PersonalInfo struct {
	Name      string `json:"name" mapstructure:"name"`
	Email     string `json:"email" mapstructure:"email"`
	Phone     string `json:"phone,omitempty" mapstructure:"phone"`
	LinkedIn  string `json:"linkedin,omitempty" mapstructure:"linkedin"`
	GitHub    string `json:"github,omitempty" mapstructure:"github"`
	Portfolio string `json:"portfolio,omitempty" mapstructure:"portfolio"`
}

type Education struct {
	Degree      string `json:"degree" mapstructure:"degree"`
	Institution string `json:"institution" mapstructure:"institution"`
	Year        string `json:"year" mapstructure:"year"`
	GPA         string `json:"gpa,omitempty" mapstructure:"gpa"`
}

type Certification struct {
	Name   string `json:"name" mapstructure:"name"`
	Issuer string `json:"issuer,omitempty" mapstructure:"issuer"`
	Date   string `json:"date,omitempty" mapstructure:"date"`
}

type Project struct {
	Name         string   `json:"name" mapstructure:"name"`
	Description  string   `json:"description" mapstructure:"description"`
	Technologies []string `json:"technologies" mapstructure:"technologies"`
	Link         string   `json:"link,omitempty" mapstructure:"link"`
}

type WorkExperience struct {
	Company          string   `json:"company" mapstructure:"company"`
	Role             string   `json:"role" mapstructure:"role"`
	Duration         string   `json:"duration" mapstructure:"duration"`
	Responsibilities []string `json:"responsibilities" mapstructure:"responsibilities"`
}

// Improvement is a resume suggestion tagged critical or recommended.
type Improvement struct {
	Type       string `json:"type" mapstructure:"type"`
	Suggestion string `json:"suggestion" mapstructure:"suggestion"`
}

// SearchParams are the job search hints inferred from the resume.
// ExperienceYears is free text echoed from the oracle and is not validated.
type SearchParams struct {
	Keyword         string `json:"keyword" mapstructure:"keyword"`
	Location        string `json:"location" mapstructure:"location"`
	ExperienceYears string `json:"experience" mapstructure:"experience"`
}

// JobListing is a single normalized job posting with its match score.
// ApplyLink is either empty or an absolute URL.
type JobListing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	SalaryRange string `json:"salary_range"`
	Location    string `json:"location"`
	Experience  string `json:"experience"`
	ApplyLink   string `json:"apply_link"`
	MatchScore  int    `json:"match_score"`
}

// Normalize replaces absent sections with empty sequences, trims text and
// drops blank or duplicated skills. The skill order and casing are kept.
func (p *CandidateProfile) Normalize() {
	p.PersonalInfo.Name = strings.TrimSpace(p.PersonalInfo.Name)
	p.PersonalInfo.Email = strings.TrimSpace(p.PersonalInfo.Email)
	p.PredictedRole = strings.TrimSpace(p.PredictedRole)
	p.ExecutiveSummary = strings.TrimSpace(p.ExecutiveSummary)
	p.ExperienceYears = strings.TrimSpace(p.ExperienceYears)

	p.Skills = uniqueFold(p.Skills)
	p.Achievements = compact(p.Achievements)
	p.Improvements = normalizeImprovements(p.Improvements)

	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		p.Projects[i].Technologies = compact(p.Projects[i].Technologies)
	}
	if p.WorkExperience == nil {
		p.WorkExperience = []WorkExperience{}
	}
	for i := range p.WorkExperience {
		p.WorkExperience[i].Responsibilities = compact(p.WorkExperience[i].Responsibilities)
	}

	p.SearchParams.Keyword = strings.TrimSpace(p.SearchParams.Keyword)
	p.SearchParams.Location = strings.TrimSpace(p.SearchParams.Location)
	p.SearchParams.ExperienceYears = strings.TrimSpace(p.SearchParams.ExperienceYears)
}

// WithDefaults resolves the search hints, falling back to the given defaults
// for any blank value.
func (s SearchParams) WithDefaults(keyword, location, experience string) SearchParams {
	if s.Keyword == "" {
		s.Keyword = keyword
	}
	if s.Location == "" {
		s.Location = location
	}
	if s.ExperienceYears == "" {
		s.ExperienceYears = experience
	}
	return s
}

func normalizeImprovements(items []Improvement) []Improvement {
	result := make([]Improvement, 0, len(items))
	for _, item := range items {
		suggestion := strings.TrimSpace(item.Suggestion)
		if suggestion == "" {
			continue
		}

		kind := strings.ToLower(strings.TrimSpace(item.Type))
		if kind != ImprovementCritical {
			kind = ImprovementRecommended
		}

		result = append(result, Improvement{Type: kind, Suggestion: suggestion})
	}
	return result
}

func compact(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func uniqueFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range compact(items) {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	return result
}
