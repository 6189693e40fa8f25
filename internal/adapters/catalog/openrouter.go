package catalog

import (
	"encoding/json"
	"strconv"

	"github.com/jbctechsolutions/modelworth/internal/domain/pricing"
)

// openRouterModelList is the shape of the OpenRouter /api/v1/models payload.
type openRouterModelList struct {
	Data []openRouterModel `json:"data"`
}

type openRouterModel struct {
	ID            string                  `json:"id"`
	Pricing       openRouterPricing       `json:"pricing"`
	ContextLength int                     `json:"context_length"`
	Architecture  *openRouterArchitecture `json:"architecture"`
}

// OpenRouter reports prices as per-token decimal strings.
type openRouterPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

type openRouterArchitecture struct {
	InputModalities  []string `json:"input_modalities"`
	OutputModalities []string `json:"output_modalities"`
}

type openRouterAdapter struct{}

func (openRouterAdapter) Source() Source { return SourceOpenRouter }

// Build parses an OpenRouter model list into a pricing catalog. Entries
// without an id are skipped; unparseable prices count as zero.
func (openRouterAdapter) Build(raw []byte) *pricing.Catalog {
	cat := pricing.NewCatalog()

	var list openRouterModelList
	if err := json.Unmarshal(raw, &list); err != nil {
		return cat
	}

	for _, m := range list.Data {
		if m.ID == "" {
			continue
		}
		rec := &pricing.Record{
			InputPer1M:    perTokenToPerMillion(m.Pricing.Prompt),
			OutputPer1M:   perTokenToPerMillion(m.Pricing.Completion),
			Operator:      pricing.OperatorEquals,
			SourceModel:   m.ID,
			ContextLength: m.ContextLength,
		}
		insertRecord(cat, m.ID, rec)
	}

	return cat
}

// perTokenToPerMillion parses a per-token price string and scales it to a
// per-million-token price. Missing or unparseable values become 0.
func perTokenToPerMillion(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v * 1_000_000
}
