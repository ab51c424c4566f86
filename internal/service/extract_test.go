package service

import "testing"

func TestExtractFencedJSON(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"autoResolvable\": true}\n```\nDone."
	block, ok := extractFencedJSON(raw)
	if !ok {
		t.Fatal("expected fenced block")
	}
	if block != `{"autoResolvable": true}` {
		t.Errorf("block = %q", block)
	}
}

func TestExtractBalancedJSONPrefersClassificationPayload(t *testing.T) {
	raw := `Some prose {"other": 1} more prose {"suggestedCategories": []} trailing {"last": 2}`
	block, ok := extractClassificationJSON(raw)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if block != `{"suggestedCategories": []}` {
		t.Errorf("block = %q, want the suggestedCategories candidate", block)
	}
}

func TestExtractBalancedJSONFallsBackToLastCandidate(t *testing.T) {
	raw := `first {"a": 1} then {"b": 2}`
	block, ok := extractClassificationJSON(raw)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if block != `{"b": 2}` {
		t.Errorf("block = %q, want last candidate", block)
	}
}

func TestExtractBalancedJSONIgnoresBracesInStrings(t *testing.T) {
	raw := `{"note": "brace } inside", "x": 1}`
	candidates := extractBalancedJSON(raw)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0] != raw {
		t.Errorf("candidate = %q", candidates[0])
	}
}

func TestExtractClassificationJSONNoCandidates(t *testing.T) {
	if _, ok := extractClassificationJSON("no json here at all"); ok {
		t.Error("expected no candidate")
	}
}
