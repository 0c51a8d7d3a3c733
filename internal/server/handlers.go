package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-recolor-mcp/internal/imaging"
	"github.com/ironsheep/image-recolor-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "recolor_add_point").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Session failures name their kind in the message, e.g.
// "Tool execution failed: InvalidColor".
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("%s failed: %v", params.Name, err)
		message := "Tool execution failed"
		if kind := session.Kind(err); kind != "" {
			message += ": " + kind
		}
		return s.errorResponse(req.ID, -32000, message, err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image
	case "recolor_load_image":
		return s.handleLoadImage(args)

	// Selection
	case "recolor_start_selection":
		return s.handleStartSelection(args)
	case "recolor_add_point":
		return s.handleAddPoint(args)
	case "recolor_cancel_selection":
		return s.handleCancelSelection(args)
	case "recolor_selection_preview":
		return s.handleSelectionPreview(args)
	case "recolor_commit_selection":
		return s.handleCommitSelection(args)

	// History
	case "recolor_undo":
		return s.handleUndo(args)

	// Output
	case "recolor_export":
		return s.handleExport(args)
	case "recolor_sample_color":
		return s.handleSampleColor(args)
	case "recolor_status":
		return s.handleStatus(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Tools without required
// arguments may be called with no arguments at all.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Image Handlers ===

type loadImageArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	buf, info, err := imaging.LoadForDisplay(a.Path, s.cfg.MaxDisplayWidth)
	if err != nil {
		return nil, err
	}
	if err := s.editor.LoadImage(buf, info.Scale); err != nil {
		return nil, err
	}

	s.debugf("loaded %s: %dx%d (scale %.3f)", a.Path, info.Width, info.Height, info.Scale)
	return info, nil
}

// === Selection Handlers ===

func (s *Server) handleStartSelection(args json.RawMessage) (interface{}, error) {
	if err := s.editor.StartSelection(); err != nil {
		return nil, err
	}
	return s.editor.Status(), nil
}

type addPointArgs struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

func (s *Server) handleAddPoint(args json.RawMessage) (interface{}, error) {
	var a addPointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.X == nil || a.Y == nil {
		return nil, fmt.Errorf("x and y are required")
	}

	return s.editor.AddPoint(imaging.Point{X: *a.X, Y: *a.Y})
}

func (s *Server) handleCancelSelection(args json.RawMessage) (interface{}, error) {
	if err := s.editor.CancelSelection(); err != nil {
		return nil, err
	}
	return s.editor.Status(), nil
}

func (s *Server) handleSelectionPreview(args json.RawMessage) (interface{}, error) {
	return s.editor.Preview()
}

type commitSelectionArgs struct {
	Color        string `json:"color"`
	IncludeImage bool   `json:"include_image"`
}

type commitSelectionResult struct {
	Color     string               `json:"color"`
	Bounds    imaging.Region       `json:"bounds"`
	UndoDepth int                  `json:"undo_depth"`
	Image     *imaging.ImageResult `json:"image,omitempty"`
}

func (s *Server) handleCommitSelection(args json.RawMessage) (interface{}, error) {
	var a commitSelectionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	res, err := s.editor.CommitSelection(a.Color)
	if err != nil {
		return nil, err
	}
	s.debugf("recolored %v with %s", res.Bounds, res.Color.Hex())

	out := &commitSelectionResult{
		Color:     res.Color.Hex(),
		Bounds:    imaging.RegionFromRect(res.Bounds),
		UndoDepth: res.UndoDepth,
	}
	if a.IncludeImage {
		if out.Image, err = imaging.EncodePNG(res.Buffer, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// === History Handlers ===

type undoArgs struct {
	IncludeImage bool `json:"include_image"`
}

type undoResult struct {
	Undone    bool                 `json:"undone"`
	UndoDepth int                  `json:"undo_depth"`
	Image     *imaging.ImageResult `json:"image,omitempty"`
}

// handleUndo reports an empty history as undone=false rather than an
// error so clients can treat it as a disabled action.
func (s *Server) handleUndo(args json.RawMessage) (interface{}, error) {
	var a undoArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	buf, err := s.editor.Undo()
	if errors.Is(err, session.ErrEmptyUndoStack) {
		return &undoResult{Undone: false}, nil
	}
	if err != nil {
		return nil, err
	}

	out := &undoResult{Undone: true, UndoDepth: s.editor.UndoDepth()}
	if a.IncludeImage {
		if out.Image, err = imaging.EncodePNG(buf, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// === Output Handlers ===

type exportArgs struct {
	Path   string          `json:"path"`
	Region *imaging.Region `json:"region"`
}

type exportFileResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	buf, err := s.editor.Current()
	if err != nil {
		return nil, err
	}

	if a.Path == "" {
		return imaging.EncodePNG(buf, a.Region)
	}
	size, err := imaging.Save(buf, a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	s.debugf("exported %v to %s", size, a.Path)
	return &exportFileResult{Path: a.Path, Width: size.X, Height: size.Y}, nil
}

type sampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	buf, err := s.editor.Current()
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

func (s *Server) handleStatus(args json.RawMessage) (interface{}, error) {
	return s.editor.Status(), nil
}
