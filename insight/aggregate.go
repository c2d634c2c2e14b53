// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/danielhkuo/campaign-pulse/models"
)

// ErrAggregationFailed is returned for any fault while computing the
// visualization aggregate. Callers should not expose the wrapped cause.
var ErrAggregationFailed = errors.New("failed to compute visualization data")

const visualizationTopIssues = 10

// Aggregate computes the dashboard histograms over the voters matching f.
func (s *Service) Aggregate(ctx context.Context, f models.VisualizationFilter) (result models.VisualizationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("visualization aggregation panicked", "panic", r)
			result, err = models.VisualizationResult{}, ErrAggregationFailed
		}
	}()

	voters, err := s.store.FindVoters(ctx, f)
	if err != nil {
		return models.VisualizationResult{}, fmt.Errorf("%w: %w", ErrAggregationFailed, err)
	}

	return Summarize(voters), nil
}

// Summarize computes the four histograms in a single pass over voters.
func Summarize(voters []models.Voter) models.VisualizationResult {
	result := models.VisualizationResult{
		Affiliations: make(map[string]int),
		AgeGroups:    make(map[string]int, len(models.AgeBuckets)),
		GenderSplit:  make(map[string]int),
	}
	for _, b := range models.AgeBuckets {
		result.AgeGroups[b] = 0
	}

	issues := newIssueCounter()
	for _, v := range voters {
		result.Affiliations[NormalizeAffiliation(v.PoliticalAffiliation)]++

		if bucket, ok := AgeBucket(v.Age); ok {
			result.AgeGroups[bucket]++
		}

		if v.KeyIssues != nil {
			issues.addField(*v.KeyIssues)
		}

		result.GenderSplit[normalizeGender(v.Gender)]++
	}
	result.TopIssues = issues.top(visualizationTopIssues)

	return result
}

// NormalizeAffiliation maps a raw affiliation to its dashboard bucket:
// NULL or blank is "Empty", neutral and swingvoter (any case) are
// "SwingVoter", anything else is capitalized.
func NormalizeAffiliation(raw *string) string {
	if raw == nil {
		return models.AffiliationEmpty
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return models.AffiliationEmpty
	}
	switch strings.ToLower(s) {
	case "neutral", "swingvoter":
		return models.AffiliationSwingVoter
	}
	return capitalize(s)
}

// AgeBucket returns the bucket label for age. Missing and non-positive ages
// have no bucket.
func AgeBucket(age *int) (string, bool) {
	if age == nil || *age <= 0 {
		return "", false
	}
	switch a := *age; {
	case a <= 25:
		return models.AgeBucket18To25, true
	case a <= 40:
		return models.AgeBucket26To40, true
	case a <= 60:
		return models.AgeBucket41To60, true
	default:
		return models.AgeBucket60Plus, true
	}
}

func normalizeGender(raw *string) string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return "Other"
	}
	return capitalize(strings.TrimSpace(*raw))
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
