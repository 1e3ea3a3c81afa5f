package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Batch Operations
		{
			Name:        "attendance_run_batch",
			Description: "OCR every attendance sheet image (.png, .jpg, .jpeg, .tiff, .bmp) in a directory and save all rows as a styled Excel report. Images that fail recognition are skipped and listed in the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory containing the sheet images",
					},
					"output_filename": map[string]interface{}{
						"type":        "string",
						"description": "Path of the .xlsx report to write (overwritten if it exists). Default relatorio_texto_imagens.xlsx",
						"default":     "relatorio_texto_imagens.xlsx",
					},
					"write_empty_report": map[string]interface{}{
						"type":        "boolean",
						"description": "Write a header-only report when no text was extracted. Default false",
						"default":     false,
					},
				},
				"required": []string{"directory"},
			},
		},
		{
			Name:        "attendance_extract",
			Description: "OCR the images in a directory and return the attendance records and per-file status without writing a report.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory containing the sheet images",
					},
				},
				"required": []string{"directory"},
			},
		},

		// Record Operations
		{
			Name:        "attendance_map_line",
			Description: "Map one or more text lines onto the six attendance columns exactly as the batch run would. Useful to check how a recognized line will be split.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"line": map[string]interface{}{
						"type":        "string",
						"description": "A single recognized line",
					},
					"lines": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Several recognized lines; blank lines are skipped",
					},
				},
			},
		},
		{
			Name:        "attendance_read_report",
			Description: "Read the attendance records back from a report written by attendance_run_batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the .xlsx report",
					},
				},
				"required": []string{"path"},
			},
		},

		// Diagnostics
		{
			Name:        "attendance_ocr_info",
			Description: "Report whether Tesseract is available, its version, the configured language and the installed language packs.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
