package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/jbctechsolutions/modelworth/internal/domain/pricing"
)

// liteLLMEntry is one value of the LiteLLM model price map, keyed by model
// name at the top level.
type liteLLMEntry struct {
	InputCostPerToken  float64 `json:"input_cost_per_token"`
	OutputCostPerToken float64 `json:"output_cost_per_token"`
	MaxInputTokens     int     `json:"max_input_tokens"`
	MaxTokens          int     `json:"max_tokens"`
}

// liteLLMSpecKey is the documentation entry LiteLLM ships inside its price
// map; it is not a model.
const liteLLMSpecKey = "sample_spec"

type liteLLMAdapter struct{}

func (liteLLMAdapter) Source() Source { return SourceLiteLLM }

// Build parses the LiteLLM price map into a pricing catalog. Entries with no
// cost data are skipped so free-form metadata rows don't shadow real models.
// Each entry is decoded on its own: a malformed entry (the shipped
// sample_spec row carries documentation strings in its numeric fields) skips
// only itself, never the rest of the map.
//
// The top-level map iteration order is not defined by encoding/json, so keys
// are replayed in their original document order to keep catalog insertion
// order faithful to the provider list.
func (liteLLMAdapter) Build(raw []byte) *pricing.Catalog {
	cat := pricing.NewCatalog()

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return cat
	}

	for _, name := range documentOrderKeys(raw) {
		if name == liteLLMSpecKey {
			continue
		}
		rawEntry, ok := entries[name]
		if !ok {
			continue
		}
		var e liteLLMEntry
		if err := json.Unmarshal(rawEntry, &e); err != nil {
			continue
		}
		if e.InputCostPerToken == 0 && e.OutputCostPerToken == 0 {
			continue
		}
		contextLength := e.MaxInputTokens
		if contextLength == 0 {
			contextLength = e.MaxTokens
		}
		rec := &pricing.Record{
			InputPer1M:    e.InputCostPerToken * 1_000_000,
			OutputPer1M:   e.OutputCostPerToken * 1_000_000,
			Operator:      pricing.OperatorEquals,
			SourceModel:   name,
			ContextLength: contextLength,
		}
		insertRecord(cat, name, rec)
	}

	return cat
}

// documentOrderKeys returns the top-level object keys of a JSON document in
// the order they appear, using a streaming decoder.
func documentOrderKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)

		// Skip the value without materializing it.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}
