// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP handlers for the campaign-pulse API.

Each handler type owns the dependencies for one area of the dashboard:

  - ChatHandler: the analytics chat assistant
  - CandidateHandler: visualization, KPIs, activity feed and issue summary
  - VoterHandler: voter list, voter updates, households and saved locations
  - TaskHandler: campaign tasks
  - MessageHandler: communications and field reports
  - BoothHandler: polling booths with per-booth affiliation stats
  - SegmentHandler: saved voter filter sets

Handlers validate input, call the voter store or the database, and write JSON
through the middleware helpers. Errors are logged with slog and returned as
models.ErrorResponse bodies.
*/
package handlers
