package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironsheep/attendance-report/internal/attendance"
	"github.com/ironsheep/attendance-report/internal/batch"
	"github.com/ironsheep/attendance-report/internal/failure"
	"github.com/ironsheep/attendance-report/internal/pipeline"
	"github.com/ironsheep/attendance-report/internal/report"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "attendance_run_batch").
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
// When the error is a coded pipeline failure, data carries its kind and
// message so the client can tell a missing directory from a write error.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", failureData(err))
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Batch Operations
	case "attendance_run_batch":
		return s.handleRunBatch(args)
	case "attendance_extract":
		return s.handleExtract(args)

	// Record Operations
	case "attendance_map_line":
		return s.handleMapLine(args)
	case "attendance_read_report":
		return s.handleReadReport(args)

	// Diagnostics
	case "attendance_ocr_info":
		return s.handleOCRInfo(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// failureData renders err as {"kind", "message"} for coded failures and
// as its plain message otherwise.
func failureData(err error) interface{} {
	code := failure.CodeOf(err)
	if code == "" {
		return err.Error()
	}
	return map[string]interface{}{
		"kind":    code,
		"message": err.Error(),
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Batch Operation Handlers ===

type runBatchArgs struct {
	Directory        string `json:"directory"`
	OutputFilename   string `json:"output_filename"`
	WriteEmptyReport *bool  `json:"write_empty_report"`
}

// runBatchResult is the tool's view of a pipeline outcome.
type runBatchResult struct {
	*pipeline.Outcome
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleRunBatch(args json.RawMessage) (interface{}, error) {
	var a runBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	session := pipeline.Session{
		Directory:        a.Directory,
		OutputFilename:   a.OutputFilename,
		WriteEmptyReport: s.opts.WriteEmptyReport,
	}
	if session.OutputFilename == "" {
		session.OutputFilename = s.opts.OutputFilename
	}
	if a.WriteEmptyReport != nil {
		session.WriteEmptyReport = *a.WriteEmptyReport
	}

	outcome, err := s.runner.RunBatch(context.Background(), session)
	if err != nil {
		return nil, err
	}
	return describeOutcome(outcome), nil
}

// describeOutcome turns an outcome into the success/warning summary shown
// to the user.
func describeOutcome(o *pipeline.Outcome) *runBatchResult {
	res := &runBatchResult{Outcome: o, Status: "success"}

	switch {
	case o.Empty && !o.Written:
		res.Status = "warning"
		res.Message = "No text extracted from the images; no report was written."
	case o.Empty:
		res.Status = "warning"
		res.Message = fmt.Sprintf("No text extracted from the images; empty report saved as '%s'", o.OutputPath)
	default:
		res.Message = fmt.Sprintf("Report saved as '%s' with %d records", o.OutputPath, o.RecordCount)
	}

	if failed := o.FailedFiles(); failed > 0 {
		res.Message += fmt.Sprintf(" (%d image(s) could not be processed)", failed)
	}
	return res
}

type extractArgs struct {
	Directory string `json:"directory"`
}

func (s *Server) handleExtract(args json.RawMessage) (interface{}, error) {
	var a extractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.runner.Extract(context.Background(), a.Directory)
}

// === Record Operation Handlers ===

type mapLineArgs struct {
	Line  string   `json:"line"`
	Lines []string `json:"lines"`
}

type mapLineResult struct {
	Columns []string            `json:"columns"`
	Records []attendance.Record `json:"records"`
}

func (s *Server) handleMapLine(args json.RawMessage) (interface{}, error) {
	var a mapLineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	lines := a.Lines
	if a.Line != "" {
		lines = append([]string{a.Line}, lines...)
	}
	if len(lines) == 0 {
		return nil, failure.NewInvalidInput("line or lines is required")
	}

	return &mapLineResult{
		Columns: attendance.Columns[:],
		Records: batch.MapLines(lines),
	}, nil
}

type readReportArgs struct {
	Path string `json:"path"`
}

type readReportResult struct {
	Path    string              `json:"path"`
	Count   int                 `json:"count"`
	Records []attendance.Record `json:"records"`
}

func (s *Server) handleReadReport(args json.RawMessage) (interface{}, error) {
	var a readReportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Path) == "" {
		return nil, failure.NewInvalidInput("path is required")
	}

	records, err := report.ReadXLSX(a.Path)
	if err != nil {
		return nil, err
	}
	return &readReportResult{Path: a.Path, Count: len(records), Records: records}, nil
}

// === Diagnostics Handlers ===

func (s *Server) handleOCRInfo(args json.RawMessage) (interface{}, error) {
	if s.opts.OCRInfo == nil {
		return map[string]interface{}{"available": false, "error": "no OCR backend configured"}, nil
	}
	return s.opts.OCRInfo(), nil
}
