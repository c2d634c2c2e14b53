// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package llm is a small text generation client over langchaingo. It supports
// Cohere and OpenAI-compatible providers, bounds every call with a timeout,
// and drops calls that exceed a client-side rate limit.
package llm
