package naukri

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	urlType    = "search_by_key_loc"
	searchType = "adv"
	sourceTag  = "jobsearchDesk"
)

// SearchQuery describes a job search. Skills only personalize the match
// score, they never filter results.
type SearchQuery struct {
	Keyword    string
	Location   string
	Experience string
	Skills     []string
}

// Slug lowercases s and replaces spaces with hyphens.
func Slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// SEOKey builds the "{keyword}-jobs-in-{location}" key the job index expects.
func SEOKey(keyword, location string) string {
	return fmt.Sprintf("%s-jobs-in-%s", Slug(keyword), Slug(location))
}

// BuildParams returns the full query parameter set for a search request.
func BuildParams(q SearchQuery) url.Values {
	params := url.Values{}
	params.Set("noOfResults", strconv.Itoa(maxResults))
	params.Set("urlType", urlType)
	params.Set("searchType", searchType)
	params.Set("keyword", q.Keyword)
	params.Set("location", q.Location)
	params.Set("experience", q.Experience)
	params.Set("k", q.Keyword)
	params.Set("l", q.Location)
	params.Set("seoKey", SEOKey(q.Keyword, q.Location))
	params.Set("src", sourceTag)
	params.Set("latLong", "")

	return params
}
