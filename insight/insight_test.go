// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package insight

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/testutil"
	"github.com/danielhkuo/campaign-pulse/voterstore"
)

func setupService(t *testing.T, voters ...models.Voter) *Service {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	for _, v := range voters {
		testutil.InsertVoter(t, conn, v)
	}
	return New(voterstore.New(conn))
}

func voter(gender, affiliation string) models.Voter {
	v := models.Voter{Gender: testutil.Str(gender)}
	if affiliation != "" {
		v.PoliticalAffiliation = testutil.Str(affiliation)
	}
	return v
}

var affiliationLine = regexp.MustCompile(`^\S+ (\w+): (\d+) voters \(([\d.]+)%\)$`)

func TestGenderInsight(t *testing.T) {
	svc := setupService(t,
		voter("Female", "Supporter"),
		voter("Male", "Supporter"),
		voter("female", "Neutral"),
		voter("Female", "Opponent"),
		voter("Female", "supporter"),
		voter("Female", "SwingVoter"),
		voter("Female", ""),
		voter("Female", "Volunteer"),
	)

	reply, err := svc.GenderInsight(context.Background(), "Female")
	require.NoError(t, err)

	lines := strings.Split(reply, "\n")
	assert.Equal(t, "📊 Gender Insight: Female Voters", lines[0])
	assert.Equal(t, "Total: 7 voters", lines[1])

	var labels []string
	counts, pct := 0, 0.0
	for _, line := range lines {
		m := affiliationLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		labels = append(labels, m[1])
		n, _ := strconv.Atoi(m[2])
		p, _ := strconv.ParseFloat(m[3], 64)
		counts += n
		pct += p
	}

	assert.Equal(t, []string{"Supporter", "Neutral", "Opponent", "Empty", "Volunteer"}, labels)
	assert.Equal(t, 7, counts, "per-affiliation counts must sum to the filtered total")
	assert.InDelta(t, 100.0, pct, 0.5)
	assert.Contains(t, reply, "✅ Supporter: 2 voters (28.6%)")
	assert.Contains(t, reply, "⚪ Neutral: 2 voters (28.6%)")
	assert.Contains(t, reply, "📌 Recommendation: Focus targeted outreach to neutral female voters (28.6%).")
}

func TestGenderInsight_NoNeutralNoRecommendation(t *testing.T) {
	svc := setupService(t, voter("Male", "Supporter"), voter("Male", "Opponent"))

	reply, err := svc.GenderInsight(context.Background(), "Male")
	require.NoError(t, err)
	assert.Contains(t, reply, "✅ Supporter: 1 voters (50.0%)")
	assert.Contains(t, reply, "❌ Opponent: 1 voters (50.0%)")
	assert.NotContains(t, reply, "Recommendation")
}

func TestGenderInsight_NoRecords(t *testing.T) {
	svc := setupService(t, voter("Male", "Supporter"))

	reply, err := svc.GenderInsight(context.Background(), "Female")
	require.NoError(t, err)
	assert.Equal(t, "No voter records found for gender: Female", reply)
}

func TestTopIssueInsight(t *testing.T) {
	svc := setupService(t,
		models.Voter{KeyIssues: testutil.Str("Roads,Water")},
		models.Voter{KeyIssues: testutil.Str("roads, Electricity")},
	)

	reply, err := svc.TopIssueInsight(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "🔥 Top Voter Issues:\n• Roads: 2 voters\n• Water: 1 voters\n• Electricity: 1 voters", reply)

	reply, err = svc.TopIssueInsight(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "🔥 Top Voter Issues:\n• Roads: 2 voters", reply)
}

func TestTopIssueInsight_Empty(t *testing.T) {
	svc := setupService(t, models.Voter{KeyIssues: testutil.Str(" , ")})

	reply, err := svc.TopIssueInsight(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "No issue data available.", reply)
}

func TestAgeGroupInsight(t *testing.T) {
	svc := setupService(t,
		models.Voter{Age: testutil.Int(30)},
		models.Voter{Age: testutil.Int(25)},
		models.Voter{Age: testutil.Int(30)},
		models.Voter{},
	)

	reply, err := svc.AgeGroupInsight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "🎯 Age Distribution:\n"+
		"• Age 25: 1 voters (25.0%)\n"+
		"• Age 30: 2 voters (50.0%)\n"+
		"• Age Unknown: 1 voters (25.0%)", reply)
}

func TestAgeGroupInsight_Empty(t *testing.T) {
	svc := setupService(t)

	reply, err := svc.AgeGroupInsight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No age data available.", reply)
}

func TestBoothSupporterInsight(t *testing.T) {
	svc := setupService(t,
		models.Voter{HouseNumber: testutil.Str("12-A"), PoliticalAffiliation: testutil.Str("Supporter")},
		models.Voter{HouseNumber: testutil.Str("112"), PoliticalAffiliation: testutil.Str("opponent")},
		models.Voter{HouseNumber: testutil.Str("7"), PoliticalAffiliation: testutil.Str("Neutral")},
	)
	ctx := context.Background()

	t.Run("no booth number", func(t *testing.T) {
		reply, err := svc.BoothSupporterInsight(ctx, 0, false)
		require.NoError(t, err)
		assert.Equal(t, "Please provide a booth number (e.g., 'Booth 12').", reply)
	})

	t.Run("house number substring", func(t *testing.T) {
		reply, err := svc.BoothSupporterInsight(ctx, 12, true)
		require.NoError(t, err)
		assert.Equal(t, "📌 Booth 12 Summary (matching House number):\n"+
			"Total records: 2\n"+
			"• Supporter: 1 (50.0%)\n"+
			"• Opponent: 1 (50.0%)\n"+
			"\n"+
			"🎯 Recommendation: Prioritize door-to-door for neutral voters and phone outreach for opponents.", reply)
	})

	t.Run("no matches", func(t *testing.T) {
		reply, err := svc.BoothSupporterInsight(ctx, 99, true)
		require.NoError(t, err)
		assert.Equal(t, "No direct data found for Booth 99. Try 'Booth 99' using your local booth identifier.", reply)
	})
}

func TestSwingVoterInsight(t *testing.T) {
	svc := setupService(t,
		models.Voter{Age: testutil.Int(40), PoliticalAffiliation: testutil.Str("Neutral")},
		models.Voter{Age: testutil.Int(30), PoliticalAffiliation: testutil.Str("neutral")},
		models.Voter{Age: testutil.Int(30), PoliticalAffiliation: testutil.Str("NEUTRAL")},
		models.Voter{Age: testutil.Int(50), PoliticalAffiliation: testutil.Str("Neutral")},
		models.Voter{Age: testutil.Int(30), PoliticalAffiliation: testutil.Str("Supporter")},
		models.Voter{Age: testutil.Int(30), PoliticalAffiliation: testutil.Str("SwingVoter")},
	)

	reply, err := svc.SwingVoterInsight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "🎯 Swing Voter Profile (Top groups by count):\n"+
		"• Age 30: 2 neutral/swing voters\n"+
		"• Age 40: 1 neutral/swing voters\n"+
		"• Age 50: 1 neutral/swing voters\n"+
		"\n"+
		"📌 Recommendation: Run targeted youth outreach & issue campaigns.", reply)
}

func TestSwingVoterInsight_Empty(t *testing.T) {
	svc := setupService(t, voter("Female", "Supporter"))

	reply, err := svc.SwingVoterInsight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No swing voter data found.", reply)
}

func TestWinProbability(t *testing.T) {
	svc := setupService(t,
		voter("Female", "Supporter"),
		voter("Male", "supporter"),
		voter("Male", "Opponent"),
		voter("Female", ""),
	)

	reply, err := svc.WinProbability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "📈 Estimated Supporter Share: 2/4 (50.0%). This is a rough indicator, not a true probability.", reply)
}

func TestWinProbability_EmptyStore(t *testing.T) {
	svc := setupService(t)

	reply, err := svc.WinProbability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No affiliation data.", reply)
}

func TestIssueDigest(t *testing.T) {
	svc := setupService(t,
		models.Voter{KeyIssues: testutil.Str("roads")},
		models.Voter{KeyIssues: testutil.Str("water")},
		models.Voter{KeyIssues: testutil.Str("roads")},
		models.Voter{},
	)

	digest, err := svc.IssueDigest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "roads: 2 voters, water: 1 voters", digest)
	assert.Equal(t, "Summarize voter concerns: roads: 2 voters, water: 1 voters", SummaryPrompt(digest))

	empty, err := setupService(t).IssueDigest(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.0%", percent(0, 0))
	assert.Equal(t, "33.3%", percent(1, 3))
	assert.Equal(t, "66.7%", percent(2, 3))
	assert.Equal(t, "100.0%", percent(5, 5))
}
