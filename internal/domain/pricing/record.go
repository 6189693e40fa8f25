// Package pricing contains the core domain types and algorithms for
// resolving leaderboard model names against provider pricing catalogs.
package pricing

// Operator controls how a catalog entry's key is matched against a
// normalized query during operator-based matching.
type Operator string

// Matching operators. Equals entries only match on the exact-key stage;
// Includes and StartsWith entries additionally participate in the
// operator-based stage of resolution.
const (
	OperatorEquals     Operator = "equals"
	OperatorIncludes   Operator = "includes"
	OperatorStartsWith Operator = "startsWith"
)

// ParseOperator converts a provider-supplied operator string to an Operator,
// defaulting to Equals for empty or unrecognized values.
func ParseOperator(s string) Operator {
	switch s {
	case string(OperatorIncludes):
		return OperatorIncludes
	case string(OperatorStartsWith):
		return OperatorStartsWith
	default:
		return OperatorEquals
	}
}

// Record is a canonical pricing entry for one model.
// Costs are USD per million tokens. Records are immutable once constructed;
// a ContextLength of 0 means the provider did not report one.
type Record struct {
	InputPer1M    float64
	OutputPer1M   float64
	Operator      Operator
	SourceModel   string
	ContextLength int
}

// BlendedPrice returns the mean of input and output per-million cost.
func (r *Record) BlendedPrice() float64 {
	return (r.InputPer1M + r.OutputPer1M) / 2
}

// Modality identifies an input or output modality a model supports.
type Modality string

// Known modalities.
const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
	ModalityVideo Modality = "video"
	ModalityFile  Modality = "file"
)

// ModalitySet is an unordered set of modalities.
type ModalitySet map[Modality]bool

// NewModalitySet builds a set from the given modalities.
func NewModalitySet(mods ...Modality) ModalitySet {
	set := make(ModalitySet, len(mods))
	for _, m := range mods {
		set[m] = true
	}
	return set
}

// Has reports whether the set contains the given modality.
func (s ModalitySet) Has(m Modality) bool {
	return s[m]
}

// ContextRecord carries context-window and modality metadata for one model.
// ExplicitModalities distinguishes provider-reported modalities from the
// {text} default applied when the provider reported none.
type ContextRecord struct {
	ContextLength      int
	InputModalities    ModalitySet
	OutputModalities   ModalitySet
	ExplicitModalities bool
	SourceModel        string
}
