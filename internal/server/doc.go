// Package server implements the MCP (Model Context Protocol) server for
// selective image recoloring.
//
// This package provides a JSON-RPC 2.0 server that exposes an editing
// session through the MCP protocol. A client loads one image, outlines a
// region with a polygon and recolors it, with undo.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image:
//   - recolor_load_image: Load an image, downscaling wide images
//
// Selection:
//   - recolor_start_selection: Begin a polygon
//   - recolor_add_point: Add a vertex
//   - recolor_cancel_selection: Abandon the polygon
//   - recolor_selection_preview: Outline to draw over the image
//   - recolor_commit_selection: Recolor the polygon with a hex color
//
// History:
//   - recolor_undo: Revert the last recolor
//
// Output:
//   - recolor_export: Return base64 PNG or write a file
//   - recolor_sample_color: Color at a pixel
//   - recolor_status: Session summary
//
// # Session
//
// The server holds a single session.Editor for its lifetime. Loading an
// image replaces the previous one and discards its undo history.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC errors with code -32000. When the
// failure is a session failure the message names its kind, for example
// "Tool execution failed: InsufficientPoints". An undo with nothing to
// undo is not an error; it reports "undone": false.
//
// # Configuration
//
// See Config and ConfigFromEnv for the RECOLOR_MCP_* environment variables.
package server
