package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func idProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func positionSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"w": map[string]interface{}{"type": "number", "description": "Fraction of the width (0 = left, 1 = right)"},
			"h": map[string]interface{}{"type": "number", "description": "Fraction of the height (0 = top, 1 = bottom)"},
		},
		"required": []string{"w", "h"},
	}
}

// patternOptionProperties returns the schema for the builder settings shared by
// pattern_create and pattern_from_region.
func patternOptionProperties() map[string]interface{} {
	return map[string]interface{}{
		"name": map[string]interface{}{
			"type":        "string",
			"description": "Pattern name. Defaults to the file name without extension",
		},
		"url": map[string]interface{}{
			"type":        "string",
			"description": "Optional source URL recorded on the pattern",
		},
		"fixed": map[string]interface{}{
			"type":        "boolean",
			"description": "Pattern always appears in the same place",
		},
		"dynamic": map[string]interface{}{
			"type":        "boolean",
			"description": "Pattern content varies too much for pattern matching",
		},
		"index": map[string]interface{}{
			"type":        "integer",
			"description": "Index in classification matrices",
		},
		"kmeans_profiles": map[string]interface{}{
			"type":        "boolean",
			"description": "Compute k-means colour profiles for the pattern image",
		},
		"position": positionSchema("Point inside a match that the pattern locates to (default center)"),
		"position_name": map[string]interface{}{
			"type":        "string",
			"description": "Named position instead of explicit coordinates, e.g. TOPLEFT or bottom_right",
		},
		"anchors": map[string]interface{}{
			"type":        "array",
			"description": "Anchors that define a region relative to a match of this pattern",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"border": map[string]interface{}{
						"type":        "string",
						"description": "Named position selecting the border(s) of the new region",
					},
					"position_in_match": positionSchema("Point of the match the border is attached to"),
				},
				"required": []string{"border", "position_in_match"},
			},
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its name, dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Pattern lifecycle
		{
			Name:        "pattern_create",
			Description: "Create a pattern. With a path the image is loaded and the name defaults to the file name; without one a generic pattern with no image is created.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(patternOptionProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Image file for the pattern",
					},
				}),
			},
		},
		{
			Name:        "pattern_from_region",
			Description: "Crop a region from a screenshot and store it as a new pattern.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(patternOptionProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot",
					},
					"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
					"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
					"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
					"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
				}),
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "pattern_get",
			Description: "Return a stored pattern, optionally with its image as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Pattern id"),
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the pattern image as base64 PNG",
						"default":     false,
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "pattern_list",
			Description: "List all stored patterns in creation order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "pattern_delete",
			Description: "Remove a stored pattern.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Pattern id"),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "pattern_equals",
			Description: "Check whether two patterns are equal: same image path, flags, position and anchors. Patterns without an image path are never equal.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"a": idProperty("First pattern id"),
					"b": idProperty("Second pattern id"),
				},
				"required": []string{"a", "b"},
			},
		},

		// Pattern geometry and colour
		{
			Name:        "pattern_locate",
			Description: "Project the pattern's position into a match region. When the pattern has anchors the anchored region is returned as well.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Pattern id"),
					"match": map[string]interface{}{
						"type":        "object",
						"description": "Region where the pattern was found",
						"properties": map[string]interface{}{
							"x": map[string]interface{}{"type": "integer"},
							"y": map[string]interface{}{"type": "integer"},
							"w": map[string]interface{}{"type": "integer"},
							"h": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x", "y", "w", "h"},
					},
				},
				"required": []string{"id", "match"},
			},
		},
		{
			Name:        "pattern_sample_color",
			Description: "Sample the pattern image's colour at the pattern's position.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Pattern id"),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "pattern_color_profiles",
			Description: "Return k-means colour profiles of the pattern image (rgb, hsv, lab). Only available for patterns created with kmeans_profiles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Pattern id"),
					"schema": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rgb", "hsv", "lab"},
						"description": "Return a single schema (default: all)",
					},
					"k": map[string]interface{}{
						"type":        "integer",
						"description": "Return a single cluster count (default: max_k when schema is set)",
					},
				},
				"required": []string{"id"},
			},
		},

		{
			Name:        "position_lookup",
			Description: "Return the coordinates of a named position such as TOPLEFT or MIDDLEMIDDLE.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Position name (case and separators ignored)",
					},
				},
				"required": []string{"name"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
