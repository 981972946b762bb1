// Package naukri queries the Naukri job index and normalizes its postings
// into scored job listings.
package naukri

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/scoring"
)

const (
	apiURL = "https://www.naukri.com"
	// Origin is the job board origin relative apply links are resolved against.
	Origin     = "https://www.naukri.com"
	SearchPath = "/jobapi/v3/search"
	// Max value the job index returns per page.
	maxResults = 20

	defaultTimeout = 10 * time.Second
)

// Scorer rates a posting against the candidate skills.
type Scorer interface {
	Score(title string, tags, candidateSkills []string) int
}

// Client queries the job index and turns its listings into scored
// JobListings. The exported fields may be adjusted after New and before the
// first Search.
type Client struct {
	logger     *zap.Logger
	scorer     Scorer
	HTTPClient *http.Client
	APIURL     string
	Origin     string
	Headers    http.Header
}

func New(logger *zap.Logger, scorer Scorer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if scorer == nil {
		scorer = scoring.New(nil)
	}

	return &Client{
		logger: logger,
		scorer: scorer,
		APIURL: apiURL,
		Origin: Origin,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		Headers: DefaultHeaders(),
	}
}
