package naukri

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/resume-radar/internal/profile"
)

// Fixed positions of the placeholders array in a job index posting.
const (
	placeholderExperience = iota
	placeholderSalary
	placeholderLocation
)

// rawJob mirrors the parts of a job index posting we rely on.
// Everything else in the payload is ignored.
type rawJob struct {
	Title         string        `mapstructure:"title"`
	CompanyName   string        `mapstructure:"companyName"`
	Placeholders  []placeholder `mapstructure:"placeholders"`
	TagsAndSkills []string      `mapstructure:"tagsAndSkills"`
	StaticURL     string        `mapstructure:"staticUrl"`
	JobURL        string        `mapstructure:"jobUrl"`
}

type placeholder struct {
	Type  string `mapstructure:"type"`
	Label string `mapstructure:"label"`
}

// decodeJob converts a raw posting into rawJob. Tags may arrive either as a
// list or as a comma separated string.
func decodeJob(item map[string]any) (*rawJob, error) {
	var job rawJob
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           &job,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(item); err != nil {
		return nil, fmt.Errorf("decode job posting: %w", err)
	}

	return &job, nil
}

func (j *rawJob) Experience() string { return j.placeholder(placeholderExperience) }

func (j *rawJob) Salary() string { return j.placeholder(placeholderSalary) }

func (j *rawJob) Location() string { return j.placeholder(placeholderLocation) }

func (j *rawJob) placeholder(idx int) string {
	if idx >= len(j.Placeholders) {
		return profile.NotAvailable
	}
	return orNotAvailable(j.Placeholders[idx].Label)
}

func (j *rawJob) Tags() []string {
	tags := make([]string, 0, len(j.TagsAndSkills))
	for _, tag := range j.TagsAndSkills {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Link returns the absolute apply link, preferring the static URL.
func (j *rawJob) Link(origin string) string {
	link := strings.TrimSpace(j.StaticURL)
	if link == "" {
		link = strings.TrimSpace(j.JobURL)
	}
	return ResolveLink(link, origin)
}

// ResolveLink makes link absolute against origin. Absolute http(s) links are
// returned unchanged and an empty link stays empty.
func ResolveLink(link, origin string) string {
	if link == "" {
		return ""
	}

	if u, err := url.Parse(link); err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https") {
		return link
	}

	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return strings.TrimRight(origin, "/") + link
}

func orNotAvailable(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return profile.NotAvailable
	}
	return s
}
