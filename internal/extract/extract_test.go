package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func suggestionSchema() Schema {
	return Schema{
		Name: "suggestion",
		Fields: []Field{
			{Name: "priority", Kind: KindScalar, Required: true, FallbackPrompt: "Respond with only the priority level."},
			{Name: "items", Kind: KindList, Required: true, FallbackPrompt: "Respond with only a JSON array of items."},
			{Name: "notes", Kind: KindScalar, Default: ""},
		},
	}
}

// fakeRequester records which fields were asked for and answers from a fixed
// map, failing for anything else.
type fakeRequester struct {
	responses map[string]string
	requests  []string
}

func (f *fakeRequester) RequestField(_ context.Context, field Field) (string, error) {
	f.requests = append(f.requests, field.Name)
	if response, ok := f.responses[field.Name]; ok {
		return response, nil
	}
	return "", errors.New("endpoint unreachable")
}

func TestExtractCleanInput(t *testing.T) {
	result, err := Extract(context.Background(), `{"priority":"high","items":["check brakes"]}`, suggestionSchema(), Options{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if result.Repaired {
		t.Fatal("clean input must not be marked repaired")
	}
	if result.Strategy != string(strategyDirect) {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	if result.Values["priority"] != "high" {
		t.Fatalf("priority = %v", result.Values["priority"])
	}
	items := result.Values["items"].([]any)
	if len(items) != 1 || items[0] != "check brakes" {
		t.Fatalf("items = %v", items)
	}
	if result.AttemptID == "" {
		t.Fatal("expected attempt id")
	}
}

func TestExtractFencedTruncated(t *testing.T) {
	raw := "```json\n{\"priority\":\"high\",\"items\":[\"check brakes\",\"inspect f"
	result, err := Extract(context.Background(), raw, suggestionSchema(), Options{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !result.Repaired {
		t.Fatal("expected repair to be recorded")
	}
	if result.Values["priority"] != "high" {
		t.Fatalf("priority = %v", result.Values["priority"])
	}
	items := result.Values["items"].([]any)
	if len(items) != 1 || items[0] != "check brakes" {
		t.Fatalf("expected partial item dropped, got %v", items)
	}
}

func TestExtractDefaultsOptionalFields(t *testing.T) {
	result, err := Extract(context.Background(), `{"priority":"high","items":[]}`, suggestionSchema(), Options{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if result.Values["notes"] != "" {
		t.Fatalf("notes = %v", result.Values["notes"])
	}
	if len(result.Defaulted) != 1 || result.Defaulted[0] != "notes" {
		t.Fatalf("Defaulted = %v", result.Defaulted)
	}
}

func TestExtractOptionalListDefaultsToEmpty(t *testing.T) {
	schema := Schema{
		Name: "checklist",
		Fields: []Field{
			{Name: "critical_items", Kind: KindList, Required: true},
			{Name: "recommended_items", Kind: KindList},
		},
	}
	result, err := Extract(context.Background(), `{"critical_items":["brake pads"]}`, schema, Options{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	recommended := result.Values["recommended_items"].([]any)
	if len(recommended) != 0 {
		t.Fatalf("recommended_items = %v", recommended)
	}
}

func TestExtractWrongKindTreatedAsMissing(t *testing.T) {
	requester := &fakeRequester{responses: map[string]string{"items": `["rotate tires"]`}}
	result, err := Extract(context.Background(), `{"priority":"high","items":"not a list"}`, suggestionSchema(), Options{Fallback: requester})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	items := result.Values["items"].([]any)
	if len(items) != 1 || items[0] != "rotate tires" {
		t.Fatalf("items = %v", items)
	}
}

func TestExtractNoPayload(t *testing.T) {
	_, err := Extract(context.Background(), "Sorry, I can't help with that.", suggestionSchema(), Options{})
	if !errors.Is(err, ErrNoPayload) {
		t.Fatalf("expected ErrNoPayload, got %v", err)
	}
}

func TestExtractFallbackResolvesMissingRequired(t *testing.T) {
	requester := &fakeRequester{responses: map[string]string{"priority": `"high"`}}
	result, err := Extract(context.Background(), `{"items":["check brakes"]}`, suggestionSchema(), Options{Fallback: requester})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if result.Values["priority"] != "high" {
		t.Fatalf("priority = %v", result.Values["priority"])
	}
	if len(requester.requests) != 1 || requester.requests[0] != "priority" {
		t.Fatalf("requests = %v", requester.requests)
	}
}

func TestExtractFallbackBoundedOnePerField(t *testing.T) {
	schema := Schema{
		Name: "bounded",
		Fields: []Field{
			{Name: "alpha", Kind: KindScalar, Required: true, FallbackPrompt: "alpha"},
			{Name: "beta", Kind: KindScalar, Required: true, FallbackPrompt: "beta"},
			{Name: "gamma", Kind: KindList, Required: true, FallbackPrompt: "gamma"},
		},
	}
	requester := &fakeRequester{}
	_, err := Extract(context.Background(), `{"other":1}`, schema, Options{Fallback: requester})
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 3 {
		t.Fatalf("Fields = %v", missing.Fields)
	}
	if len(requester.requests) != 3 {
		t.Fatalf("expected exactly one attempt per field, got %v", requester.requests)
	}
}

func TestExtractMissingRequiredNoFallback(t *testing.T) {
	_, err := Extract(context.Background(), `{"items":[]}`, suggestionSchema(), Options{})
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 1 || missing.Fields[0] != "priority" {
		t.Fatalf("Fields = %v", missing.Fields)
	}
}

func TestExtractFallbackResponseTruncated(t *testing.T) {
	// The field-level response is itself fenced and truncated and must go
	// through the same repair pipeline.
	requester := &fakeRequester{responses: map[string]string{
		"items": "```json\n[\"check tire pressure\",\"torque lug nu",
	}}
	result, err := Extract(context.Background(), `{"priority":"high"}`, suggestionSchema(), Options{Fallback: requester})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	items := result.Values["items"].([]any)
	if len(items) != 1 || items[0] != "check tire pressure" {
		t.Fatalf("items = %v", items)
	}
}

func TestExtractTruncationAtEveryOffset(t *testing.T) {
	full := `{"priority":"high","items":["check brakes","bleed fluid"]}`
	priorityEnd := strings.Index(full, `","items"`) + 1

	for offset := 1; offset < len(full); offset++ {
		truncated := full[:offset]
		result, err := Extract(context.Background(), truncated, suggestionSchema(), Options{Fallback: &fakeRequester{}})
		if err != nil {
			var missing *MissingFieldsError
			if !errors.As(err, &missing) {
				t.Fatalf("offset %d: expected MissingFieldsError or success, got %v", offset, err)
			}
			continue
		}
		for _, field := range suggestionSchema().Fields {
			if _, ok := result.Values[field.Name]; !ok {
				t.Fatalf("offset %d: field %s unset in successful result", offset, field.Name)
			}
		}
		if offset > priorityEnd && result.Values["priority"] != "high" {
			t.Fatalf("offset %d: priority = %v", offset, result.Values["priority"])
		}
	}
}

func TestExtractRootArrayValue(t *testing.T) {
	schema := Schema{Name: "array", Fields: []Field{
		{Name: "items", Kind: KindList, Required: true},
	}}
	// A root array carries no object fields; the required field must go
	// through fallback.
	requester := &fakeRequester{responses: map[string]string{"items": `["a"]`}}
	schema.Fields[0].FallbackPrompt = "items"
	result, err := Extract(context.Background(), `["a","b"]`, schema, Options{Fallback: requester})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(result.Values["items"].([]any)) != 1 {
		t.Fatalf("items = %v", result.Values["items"])
	}
}

func TestParseFieldValueBareScalar(t *testing.T) {
	value, err := parseFieldValue("high", Field{Name: "priority", Kind: KindScalar})
	if err != nil {
		t.Fatalf("parseFieldValue returned error: %v", err)
	}
	if value != "high" {
		t.Fatalf("value = %v", value)
	}

	value, err = parseFieldValue(` "medium" `, Field{Name: "priority", Kind: KindScalar})
	if err != nil {
		t.Fatalf("parseFieldValue returned error: %v", err)
	}
	if value != "medium" {
		t.Fatalf("value = %v", value)
	}
}
