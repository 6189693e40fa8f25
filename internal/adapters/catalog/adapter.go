// Package catalog adapts raw provider pricing payloads into the uniform
// in-memory catalog the resolver consumes. Each supported provider shape has
// its own adapter variant; adding a provider means adding a variant, not
// editing a shared branch.
package catalog

import (
	"strings"

	"github.com/jbctechsolutions/modelworth/internal/domain/pricing"
)

// Source identifies a pricing catalog provider.
type Source string

// Supported pricing sources.
const (
	SourceOpenRouter Source = "openrouter"
	SourceHelicone   Source = "helicone"
	SourceLiteLLM    Source = "litellm"
)

// Sources returns all supported sources in a stable order.
func Sources() []Source {
	return []Source{SourceOpenRouter, SourceHelicone, SourceLiteLLM}
}

// Valid reports whether s names a supported source.
func (s Source) Valid() bool {
	switch s {
	case SourceOpenRouter, SourceHelicone, SourceLiteLLM:
		return true
	}
	return false
}

// Adapter builds a pricing catalog from one provider's raw JSON payload.
// Builders are forgiving: malformed entries are skipped and a structurally
// wrong payload yields an empty catalog, never an error.
type Adapter interface {
	Source() Source
	Build(raw []byte) *pricing.Catalog
}

// ForSource returns the adapter for the given source.
func ForSource(s Source) (Adapter, bool) {
	switch s {
	case SourceOpenRouter:
		return openRouterAdapter{}, true
	case SourceHelicone:
		return heliconeAdapter{}, true
	case SourceLiteLLM:
		return liteLLMAdapter{}, true
	}
	return nil, false
}

// insertRecord inserts a record under its normalized key and, when the name
// carries a provider path prefix, additionally under the bare model name
// after the last slash. Both fully-qualified and bare lookups then resolve;
// the first writer for a key wins.
func insertRecord(cat *pricing.Catalog, rawName string, rec *pricing.Record) {
	key := pricing.Normalize(rawName)
	if key == "" {
		return
	}
	cat.Put(key, rec)
	if short := shortKey(key); short != "" && short != key {
		cat.Put(short, rec)
	}
}

// shortKey returns the substring after the last slash, or "" when there is
// no slash.
func shortKey(key string) string {
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return ""
	}
	return key[idx+1:]
}
