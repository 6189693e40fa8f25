package catalog

import (
	"encoding/json"

	"github.com/jbctechsolutions/modelworth/internal/domain/pricing"
)

// heliconeCost is one entry of the Helicone model cost export. Helicone is
// the only source whose records can match by substring or prefix membership
// rather than structural boundary rules, via the operator field.
type heliconeCost struct {
	Model           string  `json:"model"`
	InputCostPer1M  float64 `json:"input_cost_per_1m"`
	OutputCostPer1M float64 `json:"output_cost_per_1m"`
	Operator        string  `json:"operator"`
}

type heliconeAdapter struct{}

func (heliconeAdapter) Source() Source { return SourceHelicone }

// Build parses a Helicone cost export into a pricing catalog. The payload
// may be a bare array or wrapped in {"data": [...]}; anything else yields an
// empty catalog.
func (heliconeAdapter) Build(raw []byte) *pricing.Catalog {
	cat := pricing.NewCatalog()

	var entries []heliconeCost
	if err := json.Unmarshal(raw, &entries); err != nil {
		var wrapped struct {
			Data []heliconeCost `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return cat
		}
		entries = wrapped.Data
	}

	for _, e := range entries {
		if e.Model == "" {
			continue
		}
		rec := &pricing.Record{
			InputPer1M:  e.InputCostPer1M,
			OutputPer1M: e.OutputCostPer1M,
			Operator:    pricing.ParseOperator(e.Operator),
			SourceModel: e.Model,
		}
		insertRecord(cat, e.Model, rec)
	}

	return cat
}
