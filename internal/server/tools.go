package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// objectSchema builds a JSON schema for an object with the given properties.
func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

var regionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x1": map[string]interface{}{"type": "integer"},
		"y1": map[string]interface{}{"type": "integer"},
		"x2": map[string]interface{}{"type": "integer"},
		"y2": map[string]interface{}{"type": "integer"},
	},
	"description": "Optional region (x2, y2 exclusive). If omitted, the entire image is used.",
}

var includeImageSchema = map[string]interface{}{
	"type":        "boolean",
	"description": "Also return the resulting image as base64-encoded PNG. Default false",
	"default":     false,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "recolor_load_image",
			Description: "Load an image file for recoloring. Images wider than the display limit are downscaled; all later coordinates refer to the loaded (possibly downscaled) image. Discards any previous selection and undo history.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the image file",
				},
			}, "path"),
		},

		// Selection
		{
			Name:        "recolor_start_selection",
			Description: "Start outlining a new polygon. Discards vertices of an unfinished polygon.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "recolor_add_point",
			Description: "Add a vertex to the polygon being outlined. Vertices are joined in the order they are added and the polygon closes automatically.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (0-based, from left)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (0-based, from top)",
				},
			}, "x", "y"),
		},
		{
			Name:        "recolor_cancel_selection",
			Description: "Abandon the polygon being outlined without changing the image.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "recolor_selection_preview",
			Description: "Get the outline to draw over the image: the vertices in order and whether the loop should be drawn closed.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "recolor_commit_selection",
			Description: "Recolor the area inside the polygon (at least 3 vertices). Hue and saturation come from the color; each pixel keeps its own lightness, so shading and texture are preserved.",
			InputSchema: objectSchema(map[string]interface{}{
				"color": map[string]interface{}{
					"type":        "string",
					"description": "Target color as 6 hex digits, with or without leading # (e.g. #FF0000)",
				},
				"include_image": includeImageSchema,
			}, "color"),
		},

		// History
		{
			Name:        "recolor_undo",
			Description: "Revert the most recent recolor. Returns undone=false when there is nothing to undo.",
			InputSchema: objectSchema(map[string]interface{}{
				"include_image": includeImageSchema,
			}),
		},

		// Output
		{
			Name:        "recolor_export",
			Description: "Get the current image. With a path, writes the file (format from extension); otherwise returns base64-encoded PNG.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Optional output file path (.png, .jpg, .gif, .bmp, .tif)",
				},
				"region": regionSchema,
			}),
		},
		{
			Name:        "recolor_sample_color",
			Description: "Get the color of the current image at a pixel, including its HSL values.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (0-based, from left)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (0-based, from top)",
				},
			}, "x", "y"),
		},
		{
			Name:        "recolor_status",
			Description: "Get the session state: image size and scale, selection state, vertex count and undo depth.",
			InputSchema: objectSchema(map[string]interface{}{}),
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
