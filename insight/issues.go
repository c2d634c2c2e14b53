// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package insight

import (
	"sort"
	"strings"

	"github.com/danielhkuo/campaign-pulse/models"
)

// IssueTokens splits a key issues field on commas and returns the trimmed,
// lower-cased non-empty segments. Duplicates are kept.
func IssueTokens(field string) []string {
	var tokens []string
	for _, part := range strings.Split(field, ",") {
		if tok := strings.ToLower(strings.TrimSpace(part)); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// issueCounter counts tokens while remembering first-seen order so that
// ties rank deterministically.
type issueCounter struct {
	counts map[string]int
	order  []string
}

func newIssueCounter() *issueCounter {
	return &issueCounter{counts: make(map[string]int)}
}

func (c *issueCounter) addField(field string) {
	for _, tok := range IssueTokens(field) {
		if _, seen := c.counts[tok]; !seen {
			c.order = append(c.order, tok)
		}
		c.counts[tok]++
	}
}

// top returns the limit most frequent tokens, count descending. Equal counts
// keep first-seen order. limit <= 0 returns everything.
func (c *issueCounter) top(limit int) models.IssueCounts {
	ranked := make(models.IssueCounts, 0, len(c.order))
	for _, tok := range c.order {
		ranked = append(ranked, models.IssueCount{Issue: tok, Count: c.counts[tok]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CountIssues tokenizes every field and returns the top limit issues.
func CountIssues(fields []string, limit int) models.IssueCounts {
	c := newIssueCounter()
	for _, f := range fields {
		c.addField(f)
	}
	return c.top(limit)
}
