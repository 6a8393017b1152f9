package mcp

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	dateSchema := func(desc string) map[string]any {
		return map[string]any{
			"type":        "string",
			"description": desc,
			"pattern":     `^\d{4}-\d{2}-\d{2}$`,
		}
	}

	return []ToolDefinition{
		// Allocations
		{
			Name:        "allocate_engineer",
			Description: "Allocate an engineer to a project for a percentage of their time over a date range. Fails if the engineer would exceed 100% during any part of the range.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"engineer_id": map[string]any{
						"type":        "string",
						"description": "Engineer to allocate",
					},
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project to allocate to",
					},
					"percentage": map[string]any{
						"type":        "integer",
						"description": "Share of the engineer's time, 1-100",
						"minimum":     1,
						"maximum":     100,
					},
					"start_date": dateSchema("First day of the allocation, YYYY-MM-DD (defaults to today)"),
					"end_date":   dateSchema("Last day of the allocation, YYYY-MM-DD (omit for open-ended)"),
				},
				"required": []string{"engineer_id", "project_id", "percentage"},
			},
		},
		{
			Name:        "update_allocation",
			Description: "Update an existing allocation's percentage or date range. Omitted fields keep their current values. The capacity check is re-run excluding the allocation being updated.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Allocation ID",
					},
					"percentage": map[string]any{
						"type":        "integer",
						"description": "New share of the engineer's time, 1-100",
						"minimum":     1,
						"maximum":     100,
					},
					"start_date": dateSchema("New first day, YYYY-MM-DD"),
					"end_date":   dateSchema("New last day, YYYY-MM-DD"),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "get_allocation_by_id",
			Description: "Get a single allocation by its ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Allocation ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "list_allocations",
			Description: "List allocations, optionally restricted to those active on a given date",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"active_on": dateSchema("Only return allocations whose range covers this date, YYYY-MM-DD"),
				},
			},
		},
		{
			Name:        "get_allocations_by_engineer",
			Description: "List all allocations for one engineer",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"engineer_id": map[string]any{
						"type":        "string",
						"description": "Engineer ID",
					},
				},
				"required": []string{"engineer_id"},
			},
		},
		{
			Name:        "get_allocations_by_project",
			Description: "List all allocations for one project",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
				},
				"required": []string{"project_id"},
			},
		},

		// Reference data
		{
			Name:        "list_engineers",
			Description: "List engineers, optionally filtered by skill tag",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"skill": map[string]any{
						"type":        "string",
						"description": "Return only engineers listing this skill (exact tag match)",
					},
				},
			},
		},
		{
			Name:        "get_engineer_by_id",
			Description: "Get a single engineer by ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Engineer ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "list_projects",
			Description: "List all projects",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_project_by_id",
			Description: "Get a single project by ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
				},
				"required": []string{"id"},
			},
		},

		// Derived views
		{
			Name:        "get_engineer_availability",
			Description: "Report how much of an engineer's time is committed and free on a given date",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"engineer_id": map[string]any{
						"type":        "string",
						"description": "Engineer ID",
					},
					"date": dateSchema("Date to inspect, YYYY-MM-DD (defaults to today)"),
				},
				"required": []string{"engineer_id"},
			},
		},
		{
			Name:        "get_recent_activity",
			Description: "List recent allocation changes, newest first",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"engineer_id": map[string]any{
						"type":        "string",
						"description": "Only show changes affecting this engineer",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of entries (default 50)",
					},
				},
			},
		},
	}
}
