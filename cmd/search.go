package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/naukri"
	"github.com/spigell/resume-radar/internal/profile"
)

const PromptBack = "back"

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Naukri and print scored job listings",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("keyword", "k", "", "job title or keywords (required)")
	searchCmd.Flags().StringP("location", "l", "", "city to search in (required)")
	searchCmd.Flags().StringP("experience", "e", "0", "years of experience")
	searchCmd.Flags().StringSliceP("skills", "s", nil, "candidate skills used for match scores")
	searchCmd.Flags().BoolP("interactive", "i", false, "browse the listings and open their apply links")

	searchCmd.MarkFlagRequired("keyword")
	searchCmd.MarkFlagRequired("location")
}

func search(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()
	defer logger.Sync()

	client, err := newJobClient(config.Naukri, logger)
	if err != nil {
		logger.Fatal("configuring the job search client", zap.Error(err))
	}

	keyword, _ := cmd.Flags().GetString("keyword")
	location, _ := cmd.Flags().GetString("location")
	experience, _ := cmd.Flags().GetString("experience")
	skills, _ := cmd.Flags().GetStringSlice("skills")

	query := naukri.SearchQuery{
		Keyword:    strings.TrimSpace(keyword),
		Location:   strings.TrimSpace(location),
		Experience: strings.TrimSpace(experience),
		Skills:     skills,
	}

	logger.Info("starting the search",
		zap.String("keyword", query.Keyword),
		zap.String("location", query.Location),
		zap.String("experience", query.Experience),
	)

	jobs := client.Search(ctx, query)
	logger.Info("getting jobs", zap.Int("count", len(jobs)))

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := browse(jobs, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	pretty, err := json.MarshalIndent(map[string]any{"jobs": jobs}, "", "  ")
	if err != nil {
		logger.Fatal("encoding jobs", zap.Error(err))
	}
	fmt.Println(string(pretty))
}

// browse lets the user pick listings one by one until they go back.
func browse(jobs []profile.JobListing, logger *zap.Logger) error {
	if len(jobs) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return nil
	}

	items := make([]string, 0, len(jobs)+1)
	for i, job := range jobs {
		items = append(items, jobLabel(i, job))
	}
	items = append(items, PromptBack)

	for {
		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: items,
			Size:  10,
		}

		idx, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		job := jobs[idx]
		logger.Info("job details",
			zap.String("title", job.Title),
			zap.String("company", job.Company),
			zap.String("salary", job.SalaryRange),
			zap.String("location", job.Location),
			zap.String("experience", job.Experience),
			zap.Int("match_score", job.MatchScore),
			zap.String("apply_link", job.ApplyLink),
		)
	}
}

func jobLabel(i int, job profile.JobListing) string {
	return fmt.Sprintf("%2d. [%d%%] %s / %s / %s", i+1, job.MatchScore, job.Title, job.Company, job.Location)
}
