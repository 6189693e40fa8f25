package catalog

import (
	"encoding/json"

	"github.com/jbctechsolutions/modelworth/internal/domain/pricing"
)

// BuildContext parses an OpenRouter model list into a context catalog.
// Context data always comes from the OpenRouter shape regardless of the
// selected pricing source. Models without architecture metadata default to
// text-only modalities with ExplicitModalities=false, so consumers can tell
// "no data" apart from "explicitly text-only".
func BuildContext(raw []byte) *pricing.ContextCatalog {
	cat := pricing.NewContextCatalog()

	var list openRouterModelList
	if err := json.Unmarshal(raw, &list); err != nil {
		return cat
	}

	for _, m := range list.Data {
		if m.ID == "" {
			continue
		}
		rec := &pricing.ContextRecord{
			ContextLength: m.ContextLength,
			SourceModel:   m.ID,
		}
		if m.Architecture != nil && (len(m.Architecture.InputModalities) > 0 || len(m.Architecture.OutputModalities) > 0) {
			rec.InputModalities = parseModalities(m.Architecture.InputModalities)
			rec.OutputModalities = parseModalities(m.Architecture.OutputModalities)
			rec.ExplicitModalities = true
		} else {
			rec.InputModalities = pricing.NewModalitySet(pricing.ModalityText)
			rec.OutputModalities = pricing.NewModalitySet(pricing.ModalityText)
		}
		insertContextRecord(cat, m.ID, rec)
	}

	return cat
}

func insertContextRecord(cat *pricing.ContextCatalog, rawName string, rec *pricing.ContextRecord) {
	key := pricing.Normalize(rawName)
	if key == "" {
		return
	}
	cat.Put(key, rec)
	if short := shortKey(key); short != "" && short != key {
		cat.Put(short, rec)
	}
}

func parseModalities(names []string) pricing.ModalitySet {
	set := make(pricing.ModalitySet, len(names))
	for _, n := range names {
		switch pricing.Modality(n) {
		case pricing.ModalityText, pricing.ModalityImage, pricing.ModalityAudio, pricing.ModalityVideo, pricing.ModalityFile:
			set[pricing.Modality(n)] = true
		}
	}
	return set
}
