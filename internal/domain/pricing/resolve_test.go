package pricing

import "testing"

// buildCatalog inserts records in order with the given keys and operators.
func buildCatalog(entries ...Record) *Catalog {
	cat := NewCatalog()
	for i := range entries {
		rec := entries[i]
		if rec.Operator == "" {
			rec.Operator = OperatorEquals
		}
		cat.Put(rec.SourceModel, &rec)
	}
	return cat
}

func TestResolveExactMatch(t *testing.T) {
	cat := buildCatalog(
		Record{SourceModel: "gpt-4o", InputPer1M: 2.5, OutputPer1M: 10},
		Record{SourceModel: "claude-sonnet-4.5", InputPer1M: 3, OutputPer1M: 15},
	)

	rec, ok := Resolve(cat, "Claude Sonnet 4.5")
	if !ok {
		t.Fatal("expected a match for exact normalized key")
	}
	if rec.SourceModel != "claude-sonnet-4.5" {
		t.Errorf("resolved %q, want claude-sonnet-4.5", rec.SourceModel)
	}
}

func TestResolveVersionBoundary(t *testing.T) {
	cat := buildCatalog(Record{SourceModel: "grok-4", InputPer1M: 3, OutputPer1M: 15})

	// A version continuation must not match the shorter base model.
	if _, ok := Resolve(cat, "grok-4.1"); ok {
		t.Error("grok-4.1 must not resolve to grok-4")
	}

	// A non-version qualifier after the separator is a legitimate match.
	rec, ok := Resolve(cat, "grok-4-preview")
	if !ok {
		t.Fatal("grok-4-preview should resolve to grok-4")
	}
	if rec.SourceModel != "grok-4" {
		t.Errorf("resolved %q, want grok-4", rec.SourceModel)
	}
}

func TestResolveDateThinkingChain(t *testing.T) {
	cat := buildCatalog(Record{SourceModel: "claude-sonnet-4.5", InputPer1M: 3, OutputPer1M: 15})

	rec, ok := Resolve(cat, "claude-sonnet-4-5-20250929-thinking-32k")
	if !ok {
		t.Fatal("date+thinking qualified name should resolve")
	}
	if rec.SourceModel != "claude-sonnet-4.5" {
		t.Errorf("resolved %q, want claude-sonnet-4.5", rec.SourceModel)
	}
}

func TestResolveOperatorPrecedence(t *testing.T) {
	t.Run("includes entry matches substring", func(t *testing.T) {
		cat := buildCatalog(
			Record{SourceModel: "gemini", Operator: OperatorIncludes, InputPer1M: 1, OutputPer1M: 2},
		)
		rec, ok := Resolve(cat, "gemini-3-pro")
		if !ok || rec.SourceModel != "gemini" {
			t.Fatalf("includes entry should match gemini-3-pro, got ok=%v", ok)
		}
	})

	t.Run("exact key beats includes entry", func(t *testing.T) {
		cat := buildCatalog(
			Record{SourceModel: "gemini", Operator: OperatorIncludes, InputPer1M: 1, OutputPer1M: 2},
			Record{SourceModel: "gemini-3-pro", InputPer1M: 2, OutputPer1M: 12},
		)
		rec, ok := Resolve(cat, "gemini-3-pro")
		if !ok {
			t.Fatal("expected a match")
		}
		if rec.SourceModel != "gemini-3-pro" {
			t.Errorf("exact entry must win over includes entry, got %q", rec.SourceModel)
		}
	})

	t.Run("longest operator key wins", func(t *testing.T) {
		cat := buildCatalog(
			Record{SourceModel: "gemini", Operator: OperatorIncludes, InputPer1M: 1, OutputPer1M: 2},
			Record{SourceModel: "gemini-3", Operator: OperatorIncludes, InputPer1M: 2, OutputPer1M: 4},
		)
		rec, ok := Resolve(cat, "gemini-3-pro-preview")
		if !ok {
			t.Fatal("expected a match")
		}
		if rec.SourceModel != "gemini-3" {
			t.Errorf("longer includes key must win, got %q", rec.SourceModel)
		}
	})

	t.Run("equal length ties break by insertion order", func(t *testing.T) {
		cat := buildCatalog(
			Record{SourceModel: "qwen-3", Operator: OperatorIncludes, InputPer1M: 1, OutputPer1M: 2},
			Record{SourceModel: "pro-qw", Operator: OperatorIncludes, InputPer1M: 9, OutputPer1M: 9},
		)
		rec, ok := Resolve(cat, "pro-qwen-3-max")
		if !ok {
			t.Fatal("expected a match")
		}
		// Both keys have length 6 and both are contained in the term; the
		// earlier catalog entry wins.
		if rec.SourceModel != "qwen-3" {
			t.Errorf("insertion order tie-break violated, got %q", rec.SourceModel)
		}
	})

	t.Run("startsWith requires prefix", func(t *testing.T) {
		cat := buildCatalog(
			Record{SourceModel: "mistral", Operator: OperatorStartsWith, InputPer1M: 1, OutputPer1M: 2},
		)
		if _, ok := Resolve(cat, "open-mistral-7b"); ok {
			t.Error("startsWith entry must not match a mid-string occurrence")
		}
		if _, ok := Resolve(cat, "mistral-large"); !ok {
			t.Error("startsWith entry should match a prefixed term")
		}
	})
}

func TestResolveQueryPrefixPrefersLongestKey(t *testing.T) {
	cat := buildCatalog(
		Record{SourceModel: "claude", InputPer1M: 1, OutputPer1M: 2},
		Record{SourceModel: "claude-sonnet-4.5", InputPer1M: 3, OutputPer1M: 15},
	)

	rec, ok := Resolve(cat, "claude-sonnet-4.5-preview")
	if !ok {
		t.Fatal("expected a match")
	}
	if rec.SourceModel != "claude-sonnet-4.5" {
		t.Errorf("most specific base model must win, got %q", rec.SourceModel)
	}
}

func TestResolveKeySuffixPrefersShortestKey(t *testing.T) {
	cat := buildCatalog(
		Record{SourceModel: "gpt-5.2-pro-extended", InputPer1M: 20, OutputPer1M: 60},
		Record{SourceModel: "gpt-5.2-pro", InputPer1M: 15, OutputPer1M: 45},
	)

	rec, ok := Resolve(cat, "gpt-5.2")
	if !ok {
		t.Fatal("bare name should match a qualified catalog entry")
	}
	if rec.SourceModel != "gpt-5.2-pro" {
		t.Errorf("least specific superset entry must win, got %q", rec.SourceModel)
	}
}

func TestResolveKeySuffixRequiresSeparator(t *testing.T) {
	cat := buildCatalog(Record{SourceModel: "gpt-5.25", InputPer1M: 1, OutputPer1M: 2})

	if _, ok := Resolve(cat, "gpt-5.2"); ok {
		t.Error("key continuing without a separator must not match")
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	cat := NewCatalog()
	if _, ok := Resolve(cat, "gpt-4o"); ok {
		t.Error("empty catalog must resolve nothing")
	}
	if _, ok := Resolve(cat, ""); ok {
		t.Error("empty name must resolve nothing")
	}
}

func TestResolveDeterminism(t *testing.T) {
	cat := buildCatalog(
		Record{SourceModel: "gemini", Operator: OperatorIncludes, InputPer1M: 1, OutputPer1M: 2},
		Record{SourceModel: "claude-sonnet-4.5", InputPer1M: 3, OutputPer1M: 15},
	)

	first, ok := Resolve(cat, "claude-sonnet-4-5-20250929")
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		again, ok := Resolve(cat, "claude-sonnet-4-5-20250929")
		if !ok || again != first {
			t.Fatalf("resolution not deterministic on attempt %d", i)
		}
	}
}

func TestResolveContext(t *testing.T) {
	cat := NewContextCatalog()
	cat.Put("gpt-4o", &ContextRecord{
		ContextLength:      128000,
		InputModalities:    NewModalitySet(ModalityText, ModalityImage),
		OutputModalities:   NewModalitySet(ModalityText),
		ExplicitModalities: true,
		SourceModel:        "openai/gpt-4o",
	})

	rec, ok := ResolveContext(cat, "GPT-4o-20241120")
	if !ok {
		t.Fatal("expected a context match")
	}
	if rec.ContextLength != 128000 {
		t.Errorf("ContextLength = %d, want 128000", rec.ContextLength)
	}
	if !rec.InputModalities.Has(ModalityImage) {
		t.Error("expected image input modality")
	}

	if _, ok := ResolveContext(cat, "unrelated-model"); ok {
		t.Error("unrelated name must not match")
	}
}
