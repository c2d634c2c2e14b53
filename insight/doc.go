// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package insight turns voter store queries into chat reports and dashboard
aggregates.

# Reports

Each generator on Service returns a multi-line text report. Empty result sets
produce a descriptive message instead of an error; errors are reserved for
store faults.

	svc := insight.New(voterstore.New(conn))
	reply, err := svc.GenderInsight(ctx, "Female")

# Aggregates

Aggregate filters the voter list and computes affiliation, age bucket, top
issue and gender histograms in one pass. Any failure, panics included, is
reported as ErrAggregationFailed.

Issue tokens are the trimmed, lower-cased comma segments of a voter's key
issues field. Repeated tokens in one field count more than once.
*/
package insight
