package catalog

import (
	"testing"

	"github.com/jbctechsolutions/modelworth/internal/domain/pricing"
)

func TestBuildContext(t *testing.T) {
	cat := BuildContext([]byte(openRouterPayload))

	rec := cat.Get("openai/gpt-4.5")
	if rec == nil {
		t.Fatal("full key missing")
	}
	if !rec.ExplicitModalities {
		t.Error("architecture metadata should mark modalities explicit")
	}
	if !rec.InputModalities.Has(pricing.ModalityImage) {
		t.Error("image input modality missing")
	}
	if rec.OutputModalities.Has(pricing.ModalityImage) {
		t.Error("unexpected image output modality")
	}

	if short := cat.Get("gpt-4.5"); short != rec {
		t.Error("short key must point at the same record")
	}
}

func TestBuildContextDefaultsToText(t *testing.T) {
	cat := BuildContext([]byte(openRouterPayload))

	rec := cat.Get("anthropic/claude-sonnet-4.5")
	if rec == nil {
		t.Fatal("entry without architecture missing")
	}
	if rec.ExplicitModalities {
		t.Error("missing architecture must not be marked explicit")
	}
	if !rec.InputModalities.Has(pricing.ModalityText) || !rec.OutputModalities.Has(pricing.ModalityText) {
		t.Error("modalities must default to text")
	}
	if rec.ContextLength != 200000 {
		t.Errorf("ContextLength = %d, want 200000", rec.ContextLength)
	}
}

func TestBuildContextWrongShape(t *testing.T) {
	if cat := BuildContext([]byte(`[]`)); cat.Len() != 0 {
		t.Error("wrong top-level shape should yield an empty context catalog")
	}
}

func TestBuildContextIgnoresUnknownModalities(t *testing.T) {
	payload := `{"data": [{"id": "x/y", "architecture": {"input_modalities": ["text", "telepathy"], "output_modalities": ["text"]}}]}`
	cat := BuildContext([]byte(payload))

	rec := cat.Get("x/y")
	if rec == nil {
		t.Fatal("entry missing")
	}
	if len(rec.InputModalities) != 1 {
		t.Errorf("unknown modality should be dropped, got %v", rec.InputModalities)
	}
}
