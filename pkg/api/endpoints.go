package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/formsiq/fieldbridge/pkg/fieldmap"
	"github.com/formsiq/fieldbridge/pkg/kit"
	"github.com/formsiq/fieldbridge/pkg/store"
	"github.com/formsiq/fieldbridge/pkg/taxonomy"
)

// Service bundles what the endpoints need: the active taxonomy, the
// optional last-mapping store, and the configured scoring options.
type Service struct {
	Registry *taxonomy.Registry
	Store    *store.Store // nil disables persistence
	Options  fieldmap.Options
	Logger   *slog.Logger
}

// Shared request/response types used by both HTTP and MCP transports.

type generateReq struct {
	DocID     string                    `json:"doc_id"`
	Canonical []string                  `json:"canonical_fields"`
	Fields    []fieldmap.ExtractedField `json:"fields"`
	Overrides map[string]string         `json:"overrides,omitempty"`
	MinScore  *float64                  `json:"min_score,omitempty"`
}

type generateResp struct {
	DocID     string                    `json:"doc_id"`
	MappingID string                    `json:"mapping_id,omitempty"`
	Mapping   map[string]any            `json:"mapping"`
	Matches   map[string]fieldmap.Match `json:"matches,omitempty"`
	Details   map[string]string         `json:"details,omitempty"`
	Report    fieldmap.Coverage         `json:"report"`
}

type interpretReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type interpretResp struct {
	Concept     string            `json:"concept,omitempty"`
	Assignments map[string]bool   `json:"assignments,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
	Resolved    bool              `json:"resolved"`
}

type taxonomyResp struct {
	Concepts         int `json:"concepts"`
	Categories       int `json:"categories"`
	CheckboxConcepts int `json:"checkbox_concepts"`
}

func (s *Service) generateEndpoint() kit.Endpoint {
	ep := func(_ context.Context, request any) (any, error) {
		req := request.(*generateReq)
		if len(req.Fields) == 0 && len(req.Overrides) == 0 {
			return nil, fmt.Errorf("no extracted fields supplied")
		}

		opts := s.Options
		if req.MinScore != nil {
			opts.MinScore = *req.MinScore
		}

		mapper := fieldmap.New(req.Canonical, s.Registry.Current(), opts)
		result := mapper.GenerateMapping(req.Fields, req.Overrides)

		resp := &generateResp{
			DocID:   req.DocID,
			Mapping: result.Flatten(),
			Matches: result.Matches,
			Details: result.Details,
			Report:  result.Report,
		}
		if s.Store != nil && req.DocID != "" {
			id, err := s.Store.Put(req.DocID, result)
			if err != nil {
				return nil, err
			}
			resp.MappingID = id
		}
		return resp, nil
	}
	return kit.Timed(s.Logger, "generate_mapping")(ep)
}

func (s *Service) interpretEndpoint() kit.Endpoint {
	ep := func(_ context.Context, request any) (any, error) {
		req := request.(*interpretReq)
		if req.Field == "" {
			return nil, fmt.Errorf("field is required")
		}
		return interpretValue(s.Registry.Current(), req.Field, req.Value), nil
	}
	return kit.Timed(s.Logger, "interpret_checkbox")(ep)
}

// interpretValue resolves a single free-text answer outside a full mapping
// run. Names that match no checkbox concept fall back to plain yes/no
// coercion keyed by the field itself.
func interpretValue(tax *taxonomy.Taxonomy, field, value string) *interpretResp {
	norm := fieldmap.Normalize(field)
	if concept, ok := tax.CheckboxConceptFor(norm); ok {
		mapper := fieldmap.New(nil, tax, fieldmap.Options{})
		result := mapper.GenerateMapping([]fieldmap.ExtractedField{{Name: field, Value: value}}, nil)
		if len(result.Checkboxes) > 0 {
			return &interpretResp{
				Concept:     concept.Name,
				Assignments: result.Checkboxes,
				Details:     result.Details,
				Resolved:    true,
			}
		}
		return &interpretResp{Concept: concept.Name}
	}
	if checked, ok := fieldmap.CoerceBool(value); ok {
		return &interpretResp{
			Assignments: map[string]bool{norm: checked},
			Resolved:    true,
		}
	}
	return &interpretResp{}
}

func (s *Service) taxonomyEndpoint() kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		t := s.Registry.Current()
		return taxonomyResp{
			Concepts:         t.ConceptCount(),
			Categories:       t.CategoryCount(),
			CheckboxConcepts: len(t.CheckboxConcepts()),
		}, nil
	}
}
