package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `staffing-mcp manages engineer-to-project time allocations.

Core concepts:
- Engineer and Project: read-only reference data, seeded at startup.
- Allocation: an engineer committed to a project for a percentage (1-100) of
  their time over a date range. Dates are YYYY-MM-DD; both ends inclusive;
  an omitted end date means open-ended.
- Capacity invariant: at no instant can an engineer's overlapping allocations
  sum past 100%. Every allocate/update is checked before it is written.

Rules of engagement:
1) Orient: list_engineers / list_projects for valid IDs,
   get_engineer_availability to see free capacity on a date.
2) Allocate with allocate_engineer; adjust with update_allocation (omitted
   fields keep their current values).
3) On OVER_CAPACITY, the error details name the conflicting allocation IDs
   and the overcommit amount; lower the percentage, shift the dates, or end
   a conflicting allocation.
4) On DUPLICATE_ALLOCATION, update the existing allocation instead of
   creating a second one on the same project.
5) get_recent_activity shows who changed what, newest first.

Docs:
- staffing://docs/capacity-policy (how overlap and the 100% budget work)
- staffing://docs/dates (date semantics and edge cases)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "staffing://docs/capacity-policy",
		Name:        "docs_capacity_policy",
		Title:       "Capacity policy",
		Description: "How overlapping allocations are counted against the 100% budget.",
		Content: `# Capacity policy

An engineer's time budget is 100% at every instant.

## What counts as overlapping

Two allocations overlap when their date ranges share at least one day.
Both ends are inclusive: an allocation ending 2026-03-31 and one starting
2026-03-31 overlap on that day. An allocation with no end date overlaps
everything from its start date onward.

## The check

Before an allocation is created or changed, the server sums the candidate
percentage with every overlapping allocation for that engineer. If the sum
exceeds 100, the request is rejected with OVER_CAPACITY and nothing is
written.

The check is conservative: an allocation that overlaps the candidate range
anywhere counts with its full percentage, even if it only covers part of
the range. A 60% allocation for January and a 60% allocation for March
block a 50% allocation spanning January through March, because each shared
day must stay within budget.

## Updates

When updating an allocation, its own current percentage is excluded from
the sum. Reducing an allocation from 80% to 60% always passes the check.
`,
	},
	{
		URI:         "staffing://docs/dates",
		Name:        "docs_dates",
		Title:       "Date semantics",
		Description: "How allocation date ranges are interpreted.",
		Content: `# Date semantics

- Dates are plain calendar days, formatted YYYY-MM-DD, interpreted in UTC.
- A range covers its start date and its end date (inclusive on both ends).
- start_date equal to end_date is a valid one-day allocation.
- start_date after end_date is rejected with VALIDATION_FAILED.
- Omitting start_date on allocate_engineer defaults it to today.
- Omitting end_date means the allocation is open-ended; it stays active
  until it is given an end date via update_allocation.
- On update_allocation, omitted date fields keep their current values; an
  open-ended allocation stays open-ended unless a new end_date is supplied.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
