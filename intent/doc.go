// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package intent classifies chat messages into a small fixed set of intents.

# Classification

Classify lower-cases the text and runs an ordered list of word-boundary
patterns; the first rule that matches decides:

	booth → gender_female → gender_male → issues → age → swing → win_probability → general

"female" is tested before "male", and gender_male additionally requires that
the word "female" is absent.

# Booth Numbers

	n, ok := intent.ExtractBooth("Booth 12 status") // 12, true
	n, ok := intent.ExtractBooth("visiting house 45") // 45, true

An explicit "booth N" is preferred; any standalone 1-4 digit number is the
fallback.
*/
package intent
