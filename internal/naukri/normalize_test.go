package naukri

import (
	"reflect"
	"testing"

	"github.com/spigell/resume-radar/internal/profile"
)

func TestResolveLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		link   string
		expect string
	}{
		{name: "leading slash", link: "/job/123", expect: "https://board.example/job/123"},
		{name: "no leading slash", link: "job/123", expect: "https://board.example/job/123"},
		{name: "absolute", link: "https://other.example/job/9", expect: "https://other.example/job/9"},
		{name: "plain http", link: "http://other.example/job/9", expect: "http://other.example/job/9"},
		{name: "empty", link: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveLink(tt.link, "https://board.example"); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDecodeJobPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		placeholders []any
		experience   string
		salary       string
		location     string
	}{
		{
			name:         "none",
			placeholders: nil,
			experience:   profile.NotAvailable,
			salary:       profile.NotAvailable,
			location:     profile.NotAvailable,
		},
		{
			name: "experience only",
			placeholders: []any{
				map[string]any{"type": "experience", "label": "2-5 Yrs"},
			},
			experience: "2-5 Yrs",
			salary:     profile.NotAvailable,
			location:   profile.NotAvailable,
		},
		{
			name: "all three",
			placeholders: []any{
				map[string]any{"type": "experience", "label": "3-6 Yrs"},
				map[string]any{"type": "salary", "label": "10-15 Lacs PA"},
				map[string]any{"type": "location", "label": "Pune"},
			},
			experience: "3-6 Yrs",
			salary:     "10-15 Lacs PA",
			location:   "Pune",
		},
		{
			name: "missing label",
			placeholders: []any{
				map[string]any{"type": "experience"},
				map[string]any{"type": "salary", "label": "Not disclosed"},
			},
			experience: profile.NotAvailable,
			salary:     "Not disclosed",
			location:   profile.NotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := map[string]any{"title": "Go Developer"}
			if tt.placeholders != nil {
				item["placeholders"] = tt.placeholders
			}

			job, err := decodeJob(item)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := job.Experience(); got != tt.experience {
				t.Fatalf("experience: expected %q, got %q", tt.experience, got)
			}
			if got := job.Salary(); got != tt.salary {
				t.Fatalf("salary: expected %q, got %q", tt.salary, got)
			}
			if got := job.Location(); got != tt.location {
				t.Fatalf("location: expected %q, got %q", tt.location, got)
			}
		})
	}
}

func TestDecodeJobTags(t *testing.T) {
	t.Parallel()

	fromList, err := decodeJob(map[string]any{"tagsAndSkills": []any{"Java", " Spring ", ""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fromList.Tags(); !reflect.DeepEqual(got, []string{"Java", "Spring"}) {
		t.Fatalf("unexpected tags from list: %#v", got)
	}

	fromString, err := decodeJob(map[string]any{"tagsAndSkills": "Java,Spring Boot, MySQL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fromString.Tags(); !reflect.DeepEqual(got, []string{"Java", "Spring Boot", "MySQL"}) {
		t.Fatalf("unexpected tags from string: %#v", got)
	}

	empty, err := decodeJob(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := empty.Tags(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty tags, got %#v", got)
	}
}

func TestRawJobLinkPrefersStaticURL(t *testing.T) {
	t.Parallel()

	job, err := decodeJob(map[string]any{
		"staticUrl": "job-listings-java-developer-acme-pune-3-to-6-years-123",
		"jobUrl":    "/job-listings/123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := job.Link("https://www.naukri.com"); got != "https://www.naukri.com/job-listings-java-developer-acme-pune-3-to-6-years-123" {
		t.Fatalf("unexpected link: %q", got)
	}

	fallback, err := decodeJob(map[string]any{"staticUrl": "", "jobUrl": "/job-listings/123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fallback.Link("https://www.naukri.com"); got != "https://www.naukri.com/job-listings/123" {
		t.Fatalf("unexpected fallback link: %q", got)
	}
}
