// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

Rows of the campaign database:

  - Voter: a voter_list row (demographics, affiliation, key issues, booth)
  - Task, Communication, Report: worker module records
  - Booth, BoothWithStats: polling booths with per-booth affiliation counts
  - Segment: a saved voter filter (JSON object)
  - VoterLocation: a geotagged household visit

# Aggregation Types

Rows returned by the voter store's GROUP BY queries:

  - GroupCount: label (nullable) and count
  - AgeCount: age (nullable) and count

VisualizationResult carries the four dashboard histograms. Its TopIssues
field is an IssueCounts, which encodes as a JSON object in rank order.

# Filters

VisualizationFilter and VoterListFilter mirror query parameters. Empty
fields mean no constraint.

# Constants

Affiliation buckets:

	AffiliationSupporter  = "Supporter"
	AffiliationNeutral    = "Neutral"
	AffiliationOpponent   = "Opponent"
	AffiliationSwingVoter = "SwingVoter"
	AffiliationEmpty      = "Empty"

Age buckets:

	"18-25", "26-40", "41-60", "60+"
*/
package models
