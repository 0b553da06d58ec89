package api

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/formsiq/fieldbridge/pkg/kit"
)

// RegisterMCPTools registers the fieldbridge MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	registerGenerateMapping(srv, svc)
	registerInterpretCheckbox(srv, svc)
	registerTaxonomyInfo(srv, svc)
}

func registerGenerateMapping(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("generate_mapping",
		mcp.WithDescription("Map AI-extracted transcript fields onto a document's canonical form fields. Runs exact, fuzzy and semantic passes plus checkbox inference and returns the mapping with a coverage report."),
		mcp.WithString("doc_id", mcp.Description("Identifier of the target document; when set, the result is stored as its last mapping")),
		mcp.WithString("canonical_fields", mcp.Required(), mcp.Description("JSON array of canonical field names from the document template")),
		mcp.WithString("fields", mcp.Required(), mcp.Description(`JSON array of extracted fields: [{"name": ..., "value": ..., "confidence": ...}]`)),
		mcp.WithString("overrides", mcp.Description("JSON object of source-to-target overrides, honored verbatim")),
	)

	kit.RegisterMCPTool(srv, tool, svc.generateEndpoint(), func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		out := &generateReq{}
		out.DocID, _ = args["doc_id"].(string)
		if err := decodeJSONArg(args, "canonical_fields", &out.Canonical); err != nil {
			return nil, err
		}
		if err := decodeJSONArg(args, "fields", &out.Fields); err != nil {
			return nil, err
		}
		if raw, _ := args["overrides"].(string); raw != "" {
			if err := json.Unmarshal([]byte(raw), &out.Overrides); err != nil {
				return nil, fmt.Errorf("overrides: %w", err)
			}
		}
		return out, nil
	})
}

func registerInterpretCheckbox(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("interpret_checkbox",
		mcp.WithDescription("Interpret one free-text answer for a checkbox concept (loan type, amortization type, loan purpose, occupancy, estate type) or coerce a plain yes/no declaration."),
		mcp.WithString("field", mcp.Required(), mcp.Description("The extracted field name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The free-text answer")),
	)

	kit.RegisterMCPTool(srv, tool, svc.interpretEndpoint(), func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		field, _ := args["field"].(string)
		value, _ := args["value"].(string)
		return &interpretReq{Field: field, Value: value}, nil
	})
}

func registerTaxonomyInfo(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("taxonomy_info",
		mcp.WithDescription("Report the sizes of the loaded taxonomy tables (synonym concepts, categories, checkbox concepts)."),
	)

	kit.RegisterMCPTool(srv, tool, svc.taxonomyEndpoint(), func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}

func decodeJSONArg(args map[string]any, key string, v any) error {
	raw, _ := args[key].(string)
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
