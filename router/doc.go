// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the campaign-pulse API.

	mux := router.NewRouter(db, cfg, textGenerator)

# Endpoints

Operational:

	GET /health
	GET /metrics

Chat:

	POST /chat {"message": "..."} -> {"reply": "..."}

Candidate command center:

	GET /api/candidate/visualization - Filtered histograms
	GET /api/candidate/kpis          - Contact, support and task counts
	GET /api/candidate/activity-feed - Recent tasks and messages
	GET /api/candidate/insights      - Summary of top voter issues
	GET /api/candidate/voters        - Same as /api/voters

Worker dashboard:

	GET  /api/voters          - Paginated, filterable voter list
	PUT  /api/voters/{id}     - Update contact and stance fields
	GET  /api/household-data  - Voters grouped by house
	POST /api/voter-location  - Save a voter's landmark and coordinates
	GET|POST /api/tasks, PUT|DELETE /api/tasks/{id}
	GET|POST /api/messages
	GET|POST /api/reports

Administration (writes require X-Admin-Key):

	GET|POST /api/booths, PUT|DELETE /api/booths/{id}
	GET|POST /api/segments, DELETE /api/segments/{id}

Each router owns its own prometheus registry, so several routers can live in
one process (as they do in tests).
*/
package router
