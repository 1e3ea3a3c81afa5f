// Package server implements the MCP (Model Context Protocol) server for the
// attendance report tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the attendance
// sheet pipeline through the MCP protocol. It is a thin presentation layer:
// every tool builds a request value and calls into the pipeline, so the
// batch logic never depends on how input was collected.
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
// Batch Operations:
//   - attendance_run_batch: OCR a directory and write the Excel report
//   - attendance_extract: OCR a directory and return records only
//
// Record Operations:
//   - attendance_map_line: Show how text lines map onto the six columns
//   - attendance_read_report: Read records back from a written report
//
// Diagnostics:
//   - attendance_ocr_info: Tesseract version and language packs
//
// # Outcomes
//
// attendance_run_batch returns status "success" or "warning" (nothing
// extracted). Fatal failures (missing directory, unwritable output) come
// back as JSON-RPC errors with code -32000 and data {"kind", "message"}.
//
// Requests are processed sequentially; a long batch blocks later requests.
package server
