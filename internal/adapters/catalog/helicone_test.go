package catalog

import (
	"testing"

	"github.com/jbctechsolutions/modelworth/internal/domain/pricing"
)

const heliconePayload = `[
	{"model": "gpt-4o", "input_cost_per_1m": 2.5, "output_cost_per_1m": 10},
	{"model": "gemini", "input_cost_per_1m": 1.25, "output_cost_per_1m": 10, "operator": "includes"},
	{"model": "mistral", "input_cost_per_1m": 2, "output_cost_per_1m": 6, "operator": "startsWith"},
	{"model": "", "input_cost_per_1m": 1, "output_cost_per_1m": 1}
]`

func TestHeliconeBuild(t *testing.T) {
	adapter, ok := ForSource(SourceHelicone)
	if !ok {
		t.Fatal("helicone adapter missing")
	}
	cat := adapter.Build([]byte(heliconePayload))

	if cat.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cat.Len())
	}

	if rec := cat.Get("gpt-4o"); rec == nil || rec.Operator != pricing.OperatorEquals {
		t.Error("missing operator must default to equals")
	}
	if rec := cat.Get("gemini"); rec == nil || rec.Operator != pricing.OperatorIncludes {
		t.Error("includes operator must be preserved")
	}
	if rec := cat.Get("mistral"); rec == nil || rec.Operator != pricing.OperatorStartsWith {
		t.Error("startsWith operator must be preserved")
	}
}

func TestHeliconeBuildWrappedPayload(t *testing.T) {
	adapter, _ := ForSource(SourceHelicone)
	cat := adapter.Build([]byte(`{"data": ` + heliconePayload + `}`))

	if cat.Len() != 3 {
		t.Fatalf("wrapped payload Len() = %d, want 3", cat.Len())
	}
}

func TestHeliconeBuildCostsPassThrough(t *testing.T) {
	// Helicone costs are already per-million and must not be rescaled.
	adapter, _ := ForSource(SourceHelicone)
	cat := adapter.Build([]byte(heliconePayload))

	rec := cat.Get("gpt-4o")
	if rec == nil {
		t.Fatal("gpt-4o missing")
	}
	if rec.InputPer1M != 2.5 || rec.OutputPer1M != 10 {
		t.Errorf("costs rescaled: %f / %f", rec.InputPer1M, rec.OutputPer1M)
	}
}

func TestHeliconeBuildWrongShape(t *testing.T) {
	adapter, _ := ForSource(SourceHelicone)

	for _, raw := range []string{`{"data": "nope"}`, `42`, `{bad`} {
		cat := adapter.Build([]byte(raw))
		if cat.Len() != 0 {
			t.Errorf("payload %q should yield an empty catalog", raw)
		}
	}
}
