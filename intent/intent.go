// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the classified purpose of a chat message.
type Intent string

const (
	Booth          Intent = "booth"
	GenderFemale   Intent = "gender_female"
	GenderMale     Intent = "gender_male"
	Issues         Intent = "issues"
	Age            Intent = "age"
	Swing          Intent = "swing"
	WinProbability Intent = "win_probability"
	General        Intent = "general"
)

// rule pairs a predicate over lower-cased text with the intent it selects.
type rule struct {
	intent Intent
	match  func(text string) bool
}

var (
	boothPattern   = regexp.MustCompile(`\bbooth\b|\bbooth\s*\d+|\bbooth:`)
	femalePattern  = regexp.MustCompile(`\bfemale\b|\bwomen\b|\bwoman\b`)
	malePattern    = regexp.MustCompile(`\bmale\b|\bmen\b|\bman\b`)
	femaleWord     = regexp.MustCompile(`\bfemale\b`)
	issuesPattern  = regexp.MustCompile(`\bissues?\b|\bproblem\b|\bconcern\b`)
	agePattern     = regexp.MustCompile(`\bage\b|\byouth\b|\b18\b|\b25\b|\b26\b|\b40\b`)
	swingPattern   = regexp.MustCompile(`\bswing\b|\bneutral\b`)
	winPattern     = regexp.MustCompile(`\bwin\b|\bchance\b|\bprobability\b|\bpercent\b`)
	explicitBooth  = regexp.MustCompile(`\bbooth\s*#?\s*(\d+)\b`)
	standaloneNums = regexp.MustCompile(`\b(\d{1,4})\b`)
)

// rules are evaluated top-down and the first match wins. The order is part of
// the contract: booth beats gender, female is checked before male, and so on.
var rules = []rule{
	{Booth, boothPattern.MatchString},
	{GenderFemale, femalePattern.MatchString},
	{GenderMale, func(t string) bool {
		return malePattern.MatchString(t) && !femaleWord.MatchString(t)
	}},
	{Issues, issuesPattern.MatchString},
	{Age, agePattern.MatchString},
	{Swing, swingPattern.MatchString},
	{WinProbability, winPattern.MatchString},
}

// Classify maps free text to an intent. Matching is case-insensitive.
func Classify(text string) Intent {
	t := strings.ToLower(text)
	for _, r := range rules {
		if r.match(t) {
			return r.intent
		}
	}
	return General
}

// ExtractBooth pulls a booth number out of free text. An explicit
// "booth N" or "booth #N" wins; otherwise the first standalone 1-4 digit
// number is used. Messages with several unrelated numbers are ambiguous and
// the first one is taken.
func ExtractBooth(text string) (int, bool) {
	t := strings.ToLower(text)

	if m := explicitBooth.FindStringSubmatch(t); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	if m := standaloneNums.FindStringSubmatch(t); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	return 0, false
}
