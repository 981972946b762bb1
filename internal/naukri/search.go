package naukri

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/profile"
)

// Search queries the job index and returns up to 20 scored listings.
// It never fails: any error is logged and an empty slice is returned,
// so callers cannot tell "no results" from "search unavailable".
func (c *Client) Search(ctx context.Context, q SearchQuery) []profile.JobListing {
	listings := make([]profile.JobListing, 0, maxResults)

	logger := c.logger.With(
		zap.String("keyword", q.Keyword),
		zap.String("location", q.Location),
		zap.String("experience", q.Experience),
	)
	logger.Info("searching jobs")

	response, err := c.fetch(ctx, BuildParams(q))
	if err != nil {
		logger.Warn("job search failed, returning no listings", zap.Error(err))
		return listings
	}

	if len(response.JobDetails) == 0 {
		logger.Info("no jobs found")
		return listings
	}

	for _, item := range response.JobDetails {
		if len(listings) == maxResults {
			break
		}

		job, err := decodeJob(item)
		if err != nil {
			logger.Debug("skipping job posting", zap.Error(err))
			continue
		}

		listings = append(listings, c.listing(job, q.Skills))
	}

	logger.Info("got job listings", zap.Int("count", len(listings)), zap.Int("found", response.NoOfJobs))
	return listings
}

func (c *Client) listing(job *rawJob, skills []string) profile.JobListing {
	return profile.JobListing{
		Title:       orNotAvailable(job.Title),
		Company:     orNotAvailable(job.CompanyName),
		SalaryRange: job.Salary(),
		Location:    job.Location(),
		Experience:  job.Experience(),
		ApplyLink:   job.Link(c.Origin),
		MatchScore:  c.scorer.Score(job.Title, job.Tags(), skills),
	}
}
