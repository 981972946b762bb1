package profile

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeFillsMissingSections(t *testing.T) {
	p, err := Decode([]byte(`{"personal_info": {"name": " Asha ", "email": "asha@example.com"}, "predicted_role": "Backend Engineer"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.PersonalInfo.Name != "Asha" {
		t.Fatalf("expected trimmed name, got %q", p.PersonalInfo.Name)
	}
	if p.Skills == nil || len(p.Skills) != 0 {
		t.Fatalf("expected empty skills, got %#v", p.Skills)
	}
	if p.Improvements == nil || len(p.Improvements) != 0 {
		t.Fatalf("expected empty improvements, got %#v", p.Improvements)
	}

	encoded, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"skills", "improvements", "education", "certifications", "projects", "work_experience", "achievements"} {
		value, ok := fields[key].([]any)
		if !ok {
			t.Fatalf("expected %s to be an array, got %#v", key, fields[key])
		}
		if len(value) != 0 {
			t.Fatalf("expected %s to be empty, got %#v", key, value)
		}
	}
}

func TestDecodeAcceptsLooseTypes(t *testing.T) {
	payload := `{
		"skills": ["Go", " go ", "", "Kubernetes"],
		"experience_years": 4,
		"achievements": "Speaker at GopherCon",
		"improvements": [
			{"type": "CRITICAL", "suggestion": "Add metrics to project descriptions"},
			{"type": "nice-to-have", "suggestion": "Link the GitHub profile"},
			{"type": "critical", "suggestion": "  "}
		],
		"search_params": {"keyword": "Go Developer", "location": "Pune", "experience": 4.5}
	}`

	p, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Skills) != 2 || p.Skills[0] != "Go" || p.Skills[1] != "Kubernetes" {
		t.Fatalf("unexpected skills: %#v", p.Skills)
	}
	if p.ExperienceYears != "4" {
		t.Fatalf("expected experience years 4, got %q", p.ExperienceYears)
	}
	if len(p.Achievements) != 1 || p.Achievements[0] != "Speaker at GopherCon" {
		t.Fatalf("unexpected achievements: %#v", p.Achievements)
	}
	if len(p.Improvements) != 2 {
		t.Fatalf("expected 2 improvements, got %#v", p.Improvements)
	}
	if p.Improvements[0].Type != ImprovementCritical || p.Improvements[1].Type != ImprovementRecommended {
		t.Fatalf("unexpected improvement types: %#v", p.Improvements)
	}
	if p.SearchParams.ExperienceYears != "4.5" {
		t.Fatalf("expected experience 4.5, got %q", p.SearchParams.ExperienceYears)
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "Sure! Here is the profile"},
		{name: "array", payload: `[{"skills": []}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode([]byte(tt.payload)); err == nil {
				t.Fatalf("expected error for %q", tt.payload)
			}
		})
	}

	if _, err := Decode([]byte(`"text"`)); !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
}

func TestDecodeLiftsBareSectionEntries(t *testing.T) {
	payload := `{
		"skills": ["Go"],
		"certifications": ["AWS Certified Developer"],
		"education": ["B.Tech Computer Science"],
		"work_experience": ["Acme Corp", {"company": "Initech", "role": "SRE"}],
		"projects": [42],
		"improvements": ["just text"],
		"search_params": {"keyword": "Go Developer", "location": "Pune", "experience": "3"}
	}`

	p, dropped, err := DecodeLoose([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dropped) != 0 {
		t.Fatalf("expected no dropped sections, got %v", dropped)
	}

	if len(p.Certifications) != 1 || p.Certifications[0].Name != "AWS Certified Developer" {
		t.Fatalf("unexpected certifications: %#v", p.Certifications)
	}
	if len(p.Education) != 1 || p.Education[0].Degree != "B.Tech Computer Science" {
		t.Fatalf("unexpected education: %#v", p.Education)
	}
	if len(p.WorkExperience) != 2 || p.WorkExperience[0].Company != "Acme Corp" || p.WorkExperience[1].Role != "SRE" {
		t.Fatalf("unexpected work experience: %#v", p.WorkExperience)
	}
	if len(p.Projects) != 1 || p.Projects[0].Name != "42" {
		t.Fatalf("unexpected projects: %#v", p.Projects)
	}
	if len(p.Improvements) != 1 || p.Improvements[0].Suggestion != "just text" || p.Improvements[0].Type != ImprovementRecommended {
		t.Fatalf("unexpected improvements: %#v", p.Improvements)
	}
	if p.SearchParams.Keyword != "Go Developer" {
		t.Fatalf("unexpected search params: %+v", p.SearchParams)
	}
}

func TestDecodeDropsUndecodableSections(t *testing.T) {
	payload := `{
		"personal_info": "Jane Doe",
		"education": [[1, 2]],
		"skills": ["Go", "SQL"],
		"predicted_role": "Backend Engineer"
	}`

	p, dropped, err := DecodeLoose([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dropped) != 2 || dropped[0] != "education" || dropped[1] != "personal_info" {
		t.Fatalf("unexpected dropped sections: %v", dropped)
	}
	if p.PersonalInfo.Name != "" {
		t.Fatalf("expected empty personal info, got %+v", p.PersonalInfo)
	}
	if p.Education == nil || len(p.Education) != 0 {
		t.Fatalf("expected empty education, got %#v", p.Education)
	}
	if len(p.Skills) != 2 || p.PredictedRole != "Backend Engineer" {
		t.Fatalf("expected other sections to survive, got %+v", p)
	}

	if _, err := Decode([]byte(payload)); err != nil {
		t.Fatalf("expected Decode to tolerate dropped sections, got %v", err)
	}
}

func TestSearchParamsWithDefaults(t *testing.T) {
	params := SearchParams{Location: "Pune"}.WithDefaults("Software Engineer", "Bangalore", "0")
	if params.Keyword != "Software Engineer" || params.Location != "Pune" || params.ExperienceYears != "0" {
		t.Fatalf("unexpected params: %+v", params)
	}
}
