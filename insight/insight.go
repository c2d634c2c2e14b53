// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package insight

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danielhkuo/campaign-pulse/models"
)

// VoterStore is the read side of the voter table used by the insights.
type VoterStore interface {
	AffiliationCountsByGender(ctx context.Context, gender string) ([]models.GroupCount, error)
	AffiliationCountsByHouseNumber(ctx context.Context, fragment string) ([]models.GroupCount, error)
	LowerAffiliationCounts(ctx context.Context) ([]models.GroupCount, error)
	AgeCounts(ctx context.Context) ([]models.AgeCount, error)
	NeutralAgeCounts(ctx context.Context, limit int) ([]models.AgeCount, error)
	KeyIssues(ctx context.Context) ([]string, error)
	TopKeyIssueFields(ctx context.Context, limit int) ([]models.GroupCount, error)
	FindVoters(ctx context.Context, f models.VisualizationFilter) ([]models.Voter, error)
}

const (
	DefaultTopIssues = 5
	swingVoterGroups = 10
	digestFields     = 10
)

// Service computes chat insights and dashboard aggregates from the voter
// store. It holds no state between calls.
type Service struct {
	store VoterStore
}

func New(store VoterStore) *Service {
	return &Service{store: store}
}

// affiliationRank fixes the display order of the well-known affiliations.
var affiliationRank = map[string]int{
	models.AffiliationSupporter: 0,
	models.AffiliationNeutral:   1,
	models.AffiliationOpponent:  2,
}

var affiliationIcons = map[string]string{
	models.AffiliationSupporter: "✅",
	models.AffiliationNeutral:   "⚪",
	models.AffiliationOpponent:  "❌",
}

// GenderInsight reports the affiliation split of voters with the given gender.
func (s *Service) GenderInsight(ctx context.Context, gender string) (string, error) {
	groups, err := s.store.AffiliationCountsByGender(ctx, gender)
	if err != nil {
		return "", err
	}
	rows, total := mergeAffiliations(groups)
	if total == 0 {
		return fmt.Sprintf("No voter records found for gender: %s", gender), nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rankOf(rows[i].label) < rankOf(rows[j].label)
	})

	lines := []string{
		fmt.Sprintf("📊 Gender Insight: %s Voters", gender),
		fmt.Sprintf("Total: %s voters", humanize.Comma(int64(total))),
		"",
	}
	var neutral *affiliationRow
	for i, row := range rows {
		icon, ok := affiliationIcons[row.label]
		if !ok {
			icon = "•"
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s voters (%s)",
			icon, row.label, humanize.Comma(int64(row.count)), percent(row.count, total)))
		if row.label == models.AffiliationNeutral {
			neutral = &rows[i]
		}
	}

	if neutral != nil {
		lines = append(lines, "", fmt.Sprintf(
			"📌 Recommendation: Focus targeted outreach to neutral %s voters (%s). Use women's groups / local meetings.",
			strings.ToLower(gender), percent(neutral.count, total)))
	}

	return strings.Join(lines, "\n"), nil
}

// TopIssueInsight reports the most frequent key issue tokens across all
// voters. limit <= 0 uses DefaultTopIssues.
func (s *Service) TopIssueInsight(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultTopIssues
	}

	fields, err := s.store.KeyIssues(ctx)
	if err != nil {
		return "", err
	}
	top := CountIssues(fields, limit)
	if len(top) == 0 {
		return "No issue data available.", nil
	}

	title := cases.Title(language.Und)
	lines := []string{"🔥 Top Voter Issues:"}
	for _, ic := range top {
		lines = append(lines, fmt.Sprintf("• %s: %s voters", title.String(ic.Issue), humanize.Comma(int64(ic.Count))))
	}
	return strings.Join(lines, "\n"), nil
}

// AgeGroupInsight reports the count and share of every distinct age.
func (s *Service) AgeGroupInsight(ctx context.Context) (string, error) {
	ages, err := s.store.AgeCounts(ctx)
	if err != nil {
		return "", err
	}
	total := 0
	for _, a := range ages {
		total += a.Count
	}
	if total == 0 {
		return "No age data available.", nil
	}

	lines := []string{"🎯 Age Distribution:"}
	for _, a := range ages {
		lines = append(lines, fmt.Sprintf("• Age %s: %s voters (%s)",
			ageLabel(a.Age), humanize.Comma(int64(a.Count)), percent(a.Count, total)))
	}
	return strings.Join(lines, "\n"), nil
}

// BoothSupporterInsight reports the affiliation split for a booth. There is
// no booth assignment join here: voters are matched by house numbers that
// contain the booth number, which is only an approximation.
func (s *Service) BoothSupporterInsight(ctx context.Context, booth int, ok bool) (string, error) {
	if !ok {
		return "Please provide a booth number (e.g., 'Booth 12').", nil
	}

	groups, err := s.store.AffiliationCountsByHouseNumber(ctx, strconv.Itoa(booth))
	if err != nil {
		return "", err
	}
	rows, total := mergeAffiliations(groups)
	if total == 0 {
		return fmt.Sprintf("No direct data found for Booth %d. Try 'Booth %d' using your local booth identifier.", booth, booth), nil
	}

	lines := []string{
		fmt.Sprintf("📌 Booth %d Summary (matching House number):", booth),
		fmt.Sprintf("Total records: %s", humanize.Comma(int64(total))),
	}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("• %s: %s (%s)", row.label, humanize.Comma(int64(row.count)), percent(row.count, total)))
	}
	lines = append(lines, "", "🎯 Recommendation: Prioritize door-to-door for neutral voters and phone outreach for opponents.")

	return strings.Join(lines, "\n"), nil
}

// SwingVoterInsight lists the ages with the most neutral voters.
func (s *Service) SwingVoterInsight(ctx context.Context) (string, error) {
	ages, err := s.store.NeutralAgeCounts(ctx, swingVoterGroups)
	if err != nil {
		return "", err
	}
	if len(ages) == 0 {
		return "No swing voter data found.", nil
	}

	lines := []string{"🎯 Swing Voter Profile (Top groups by count):"}
	for _, a := range ages {
		lines = append(lines, fmt.Sprintf("• Age %s: %s neutral/swing voters", ageLabel(a.Age), humanize.Comma(int64(a.Count))))
	}
	lines = append(lines, "", "📌 Recommendation: Run targeted youth outreach & issue campaigns.")

	return strings.Join(lines, "\n"), nil
}

// WinProbability reports the supporter share of all voters. It is a quick
// indicator, not a probability model.
func (s *Service) WinProbability(ctx context.Context) (string, error) {
	groups, err := s.store.LowerAffiliationCounts(ctx)
	if err != nil {
		return "", err
	}

	total, supporters := 0, 0
	for _, g := range groups {
		total += g.Count
		if g.Label != nil && *g.Label == "supporter" {
			supporters += g.Count
		}
	}
	if total == 0 {
		return "No affiliation data.", nil
	}

	return fmt.Sprintf("📈 Estimated Supporter Share: %s/%s (%s). This is a rough indicator, not a true probability.",
		humanize.Comma(int64(supporters)), humanize.Comma(int64(total)), percent(supporters, total)), nil
}

// IssueDigest lists the most common whole key issues fields as
// "issue: n voters" pairs. It returns "" when no voter has key issues.
func (s *Service) IssueDigest(ctx context.Context) (string, error) {
	groups, err := s.store.TopKeyIssueFields(ctx, digestFields)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if g.Label == nil || *g.Label == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d voters", *g.Label, g.Count))
	}
	return strings.Join(parts, ", "), nil
}

// SummaryPrompt builds the text generation prompt for an issue digest.
func SummaryPrompt(digest string) string {
	return "Summarize voter concerns: " + digest
}

type affiliationRow struct {
	label string
	count int
}

// mergeAffiliations title-cases raw affiliation groups, folds SwingVoter into
// Neutral, names NULL/blank groups "Empty", and sums groups that collapse to
// the same label. First-seen order is kept.
func mergeAffiliations(groups []models.GroupCount) ([]affiliationRow, int) {
	title := cases.Title(language.Und)

	var rows []affiliationRow
	index := make(map[string]int)
	total := 0
	for _, g := range groups {
		label := models.AffiliationEmpty
		if g.Label != nil && strings.TrimSpace(*g.Label) != "" {
			label = title.String(strings.TrimSpace(*g.Label))
			if strings.EqualFold(label, "swingvoter") {
				label = models.AffiliationNeutral
			}
		}

		if i, ok := index[label]; ok {
			rows[i].count += g.Count
		} else {
			index[label] = len(rows)
			rows = append(rows, affiliationRow{label: label, count: g.Count})
		}
		total += g.Count
	}
	return rows, total
}

func rankOf(label string) int {
	if r, ok := affiliationRank[label]; ok {
		return r
	}
	return len(affiliationRank)
}

// percent formats count/total with one decimal. total must be positive.
func percent(count, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	p := math.Round(float64(count)/float64(total)*1000) / 10
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

func ageLabel(age *int) string {
	if age == nil {
		return "Unknown"
	}
	return strconv.Itoa(*age)
}
