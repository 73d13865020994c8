package extract

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"
)

// Result is a fully reconciled extraction. Every declared field of the schema
// is present in Values; Defaulted names the fields that were filled from
// defaults rather than the response, so callers can choose to surface that.
type Result struct {
	AttemptID string
	Values    map[string]any
	Defaulted []string
	Repaired  bool
	Strategy  string
}

// Options carries the optional collaborators of an extraction call.
type Options struct {
	Logger *slog.Logger
	// Fallback handles per-field follow-up requests. Without one, missing
	// required fields fail the call immediately.
	Fallback Requester
}

// state tracks orchestrator progress. The machine is single-pass: no state is
// revisited within one call.
type state int

const (
	stateReceived state = iota
	stateStripped
	stateScanned
	stateParsedDirect
	stateRepairAttempted
	stateReconciled
	stateFallbackPending
	stateComplete
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateReceived:
		return "received"
	case stateStripped:
		return "stripped"
	case stateScanned:
		return "scanned"
	case stateParsedDirect:
		return "parsed_direct"
	case stateRepairAttempted:
		return "repair_attempted"
	case stateReconciled:
		return "reconciled"
	case stateFallbackPending:
		return "fallback_pending"
	case stateComplete:
		return "complete"
	default:
		return "failed"
	}
}

// Extract runs the full pipeline on one raw model response: strip markup,
// scan the payload boundary, parse (repairing on truncation), reconcile
// against the schema, and fall back per missing field. It returns either a
// complete Result or a classified error; a required field is never left
// silently unset.
func Extract(ctx context.Context, raw string, schema Schema, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	attemptID := uuid.NewString()
	logger = logger.With("component", "extract", "schema", schema.Name, "attempt_id", attemptID)

	current := stateReceived
	advance := func(next state) {
		logger.Debug("state transition", "from", current.String(), "to", next.String())
		current = next
	}

	stripped, err := stripMarkup(raw)
	if err != nil {
		advance(stateFailed)
		return nil, err
	}
	advance(stateStripped)

	end, scanErr := scanBoundary(stripped)
	if scanErr != nil && !errors.Is(scanErr, errUnclosed) {
		advance(stateFailed)
		return nil, scanErr
	}
	advance(stateScanned)

	var (
		value    any
		repaired bool
		strategy = strategyDirect
	)
	switch {
	case scanErr == nil:
		span := stripped[:end]
		if parseErr := json.Unmarshal([]byte(span), &value); parseErr == nil {
			advance(stateParsedDirect)
		} else {
			logger.Debug("direct parse failed, repairing", "error", parseErr)
			value, strategy, err = repairParse(span, schema)
			if err != nil {
				advance(stateFailed)
				return nil, err
			}
			repaired = true
			advance(stateRepairAttempted)
		}
	default:
		logger.Debug("payload truncated, repairing", "length", len(stripped))
		value, strategy, err = repairParse(stripped, schema)
		if err != nil {
			advance(stateFailed)
			return nil, err
		}
		repaired = true
		advance(stateRepairAttempted)
	}

	rec := reconcile(value, schema)
	advance(stateReconciled)

	if len(rec.Missing) > 0 {
		advance(stateFallbackPending)
		runFallback(ctx, opts.Fallback, schema, &rec, logger)
		if len(rec.Missing) > 0 {
			advance(stateFailed)
			return nil, &MissingFieldsError{Fields: rec.Missing}
		}
	}
	advance(stateComplete)

	if repaired {
		logger.Info("payload repaired", "strategy", string(strategy), "defaulted", strings.Join(rec.Defaulted, ","))
	}
	return &Result{
		AttemptID: attemptID,
		Values:    rec.Values,
		Defaulted: rec.Defaulted,
		Repaired:  repaired,
		Strategy:  string(strategy),
	}, nil
}

// repairParse evaluates repair candidates in priority order and returns the
// first that parses and reconciles with no missing required fields. When no
// candidate fully reconciles, the first parseable one wins and the missing
// fields flow to the fallback path. The jsonrepair library is the last
// resort, tried only when every local candidate fails to parse.
func repairParse(payload string, schema Schema) (any, repairStrategy, error) {
	var (
		best         any
		bestStrategy repairStrategy
		haveBest     bool
	)
	for _, candidate := range repairCandidates(payload) {
		var value any
		if json.Unmarshal([]byte(candidate.payload), &value) != nil {
			continue
		}
		if rec := reconcile(value, schema); len(rec.Missing) == 0 {
			return value, candidate.strategy, nil
		}
		if !haveBest {
			best, bestStrategy, haveBest = value, candidate.strategy, true
		}
	}
	if haveBest {
		return best, bestStrategy, nil
	}

	if fixed, err := jsonrepair.JSONRepair(payload); err == nil {
		var value any
		if json.Unmarshal([]byte(fixed), &value) == nil {
			return value, strategyLibrary, nil
		}
	}
	return nil, "", &UnrepairableError{Snippet: payloadSnippet(payload)}
}

func payloadSnippet(payload string) string {
	clean := strings.Join(strings.Fields(payload), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	if clean == "" {
		return "<empty>"
	}
	return clean
}
