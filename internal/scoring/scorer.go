// Package scoring rates how well a job posting matches a candidate's skills.
package scoring

import (
	"math/rand/v2"
	"strings"
	"sync"
)

const (
	// FallbackMin and FallbackMax bound the score used when no candidate
	// skills are known.
	FallbackMin = 82
	FallbackMax = 89

	base       = 75
	titleBonus = 5
	tagBonus   = 2
	floor      = 70
	ceiling    = 98
	jitter     = 2
	// Max is the highest score a listing can get.
	Max = 99
)

// Source provides the randomness used for jitter and the fallback band.
// IntN returns a value in [0, n).
type Source interface {
	IntN(n int) int
}

// Scorer rates how well a job listing matches a candidate's skills on a 0-99
// scale. Its jitter and fallback values are drawn from src.
type Scorer struct {
	src Source
}

// New creates a Scorer drawing randomness from src.
func New(src Source) *Scorer {
	if src == nil {
		src = globalSource{}
	}
	return &Scorer{src: src}
}

// NewSeeded creates a Scorer with a reproducible random sequence.
func NewSeeded(seed uint64) *Scorer {
	return New(&lockedSource{rnd: rand.New(rand.NewPCG(seed, seed))})
}

// Score returns the match score in [0, 99] for a job with the given title and
// tags. Without candidate skills a value from the fallback band is returned.
func (s *Scorer) Score(title string, tags, candidateSkills []string) int {
	skills := lowerAll(candidateSkills)
	if len(skills) == 0 {
		return FallbackMin + s.src.IntN(FallbackMax-FallbackMin+1)
	}

	score := raw(strings.ToLower(title), lowerAll(tags), skills)
	// Only the ceiling is enforced after jitter.
	score += s.src.IntN(2*jitter+1) - jitter
	return min(score, Max)
}

// Raw returns the score before jitter, clamped to [70, 98].
func Raw(title string, tags, candidateSkills []string) int {
	return raw(strings.ToLower(title), lowerAll(tags), lowerAll(candidateSkills))
}

func raw(title string, tags, skills []string) int {
	score := base
	for _, skill := range skills {
		if strings.Contains(title, skill) {
			score += titleBonus
		}
	}

	for _, tag := range tags {
		for _, skill := range skills {
			if strings.Contains(tag, skill) {
				score += tagBonus
				break
			}
		}
	}

	return max(floor, min(ceiling, score))
}

func lowerAll(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			result = append(result, item)
		}
	}
	return result
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}
