package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// Requester issues a narrowly scoped follow-up request for one field and
// returns the model's raw text. A small single-purpose request is far less
// likely to hit the response byte budget than a retry of the full structure.
type Requester interface {
	RequestField(ctx context.Context, field Field) (string, error)
}

// runFallback tries to fill each missing field with exactly one follow-up
// request, issued sequentially. A field whose request fails or whose response
// cannot be parsed stays missing; there are no second attempts.
func runFallback(ctx context.Context, requester Requester, schema Schema, rec *Reconciliation, logger *slog.Logger) {
	var unresolved []string
	for _, name := range rec.Missing {
		field := schema.FieldNamed(name)
		if requester == nil || field == nil || field.FallbackPrompt == "" {
			unresolved = append(unresolved, name)
			continue
		}
		raw, err := requester.RequestField(ctx, *field)
		if err != nil {
			logger.Warn("fallback request failed", "field", name, "error", err)
			unresolved = append(unresolved, name)
			continue
		}
		value, err := parseFieldValue(raw, *field)
		if err != nil || !kindMatches(value, field.Kind) {
			logger.Warn("fallback response unusable", "field", name, "error", err)
			unresolved = append(unresolved, name)
			continue
		}
		rec.Values[name] = value
		logger.Debug("fallback resolved field", "field", name)
	}
	rec.Missing = unresolved
}

// parseFieldValue normalizes a field-level response through the same strip,
// scan, and repair pipeline as a primary response. Scalar fields additionally
// accept a bare unfenced value with no structural wrapper at all.
func parseFieldValue(raw string, field Field) (any, error) {
	stripped, err := stripMarkup(raw)
	if err != nil {
		if field.Kind == KindScalar {
			return scalarFromText(raw)
		}
		return nil, err
	}

	candidate := stripped
	if end, scanErr := scanBoundary(stripped); scanErr == nil {
		span := stripped[:end]
		var value any
		if json.Unmarshal([]byte(span), &value) == nil {
			return value, nil
		}
		candidate = span
	}

	value, _, err := repairParse(candidate, Schema{})
	return value, err
}

func scalarFromText(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.ReplaceAll(trimmed, "```", "")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return nil, ErrNoPayload
	}
	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
		switch value.(type) {
		case string, float64, bool:
			return value, nil
		}
	}
	return trimmed, nil
}
