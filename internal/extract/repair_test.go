package extract

import (
	"encoding/json"
	"testing"
)

func firstParseable(t *testing.T, candidates []repairCandidate) (any, bool) {
	t.Helper()
	for _, candidate := range candidates {
		var value any
		if json.Unmarshal([]byte(candidate.payload), &value) == nil {
			return value, true
		}
	}
	return nil, false
}

func TestRepairCutMidString(t *testing.T) {
	candidates := repairCandidates(`{"priority":"high","items":["check brakes","inspect f`)
	value, ok := firstParseable(t, candidates)
	if !ok {
		t.Fatal("expected a parseable candidate")
	}
	tree := value.(map[string]any)
	if tree["priority"] != "high" {
		t.Fatalf("priority = %v", tree["priority"])
	}
	items := tree["items"].([]any)
	if len(items) != 1 || items[0] != "check brakes" {
		t.Fatalf("expected partial item dropped, got %v", items)
	}
}

func TestRepairDanglingKeyWithColon(t *testing.T) {
	candidates := repairCandidates(`{"priority":"high","reasoning":`)
	value, ok := firstParseable(t, candidates)
	if !ok {
		t.Fatal("expected a parseable candidate")
	}
	tree := value.(map[string]any)
	if tree["priority"] != "high" {
		t.Fatalf("priority = %v", tree["priority"])
	}
	if _, present := tree["reasoning"]; present {
		t.Fatal("dangling key should have been removed")
	}
}

func TestRepairBareKeyNoColon(t *testing.T) {
	candidates := repairCandidates(`{"priority":"high","reasoning"`)
	value, ok := firstParseable(t, candidates)
	if !ok {
		t.Fatal("expected a parseable candidate")
	}
	tree := value.(map[string]any)
	if len(tree) != 1 || tree["priority"] != "high" {
		t.Fatalf("expected only priority to survive, got %v", tree)
	}
}

func TestRepairKeepsCompleteArrayElement(t *testing.T) {
	// A trailing complete string inside an array is a value, not a key,
	// and must not be trimmed.
	candidates := repairCandidates(`["check brakes","bleed fluid"`)
	value, ok := firstParseable(t, candidates)
	if !ok {
		t.Fatal("expected a parseable candidate")
	}
	items := value.([]any)
	if len(items) != 2 || items[1] != "bleed fluid" {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestRepairTrailingComma(t *testing.T) {
	candidates := repairCandidates(`{"items":["a","b",`)
	value, ok := firstParseable(t, candidates)
	if !ok {
		t.Fatal("expected a parseable candidate")
	}
	items := value.(map[string]any)["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestRepairClosureOrders(t *testing.T) {
	candidates := repairCandidates(`{"a":[1,2`)
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	if candidates[0].strategy != strategyStackOrder {
		t.Fatalf("expected stack-order candidate first, got %s", candidates[0].strategy)
	}
	if candidates[0].payload != `{"a":[1,2]}` {
		t.Fatalf("unexpected stack-order candidate %q", candidates[0].payload)
	}
	var sawBracesFirst bool
	for _, candidate := range candidates {
		if candidate.strategy == strategyBracesFirst {
			sawBracesFirst = true
			if candidate.payload != `{"a":[1,2}]` {
				t.Fatalf("unexpected braces-first candidate %q", candidate.payload)
			}
		}
	}
	if !sawBracesFirst {
		t.Fatal("expected a braces-first candidate")
	}
}

func TestRepairLoneOpener(t *testing.T) {
	candidates := repairCandidates(`{`)
	value, ok := firstParseable(t, candidates)
	if !ok {
		t.Fatal("expected a parseable candidate")
	}
	if tree := value.(map[string]any); len(tree) != 0 {
		t.Fatalf("expected empty object, got %v", tree)
	}
}

func TestRepairNothingSalvageable(t *testing.T) {
	if candidates := repairCandidates(`   `); len(candidates) != 0 {
		t.Fatalf("expected zero candidates, got %v", candidates)
	}
}

func TestRepairEscapedQuotes(t *testing.T) {
	candidates := repairCandidates(`{"note":"use \"DOT4\" fluid","next":"flu`)
	value, ok := firstParseable(t, candidates)
	if !ok {
		t.Fatal("expected a parseable candidate")
	}
	tree := value.(map[string]any)
	if tree["note"] != `use "DOT4" fluid` {
		t.Fatalf("note = %v", tree["note"])
	}
	if _, present := tree["next"]; present {
		t.Fatal("truncated value should have been removed with its key")
	}
}
