package advisor

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"crewchief/internal/extract"
	"crewchief/internal/garage"
)

//go:embed prompts/*.txt
var promptFS embed.FS

// Completer is the transport the advisor speaks through. Satisfied by
// llm.Client.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Advisor builds prompts from garage data and decodes the model's responses
// into typed values.
type Advisor struct {
	client Completer
	logger *slog.Logger
}

// New constructs an Advisor. A nil logger discards log output.
func New(client Completer, logger *slog.Logger) *Advisor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Advisor{client: client, logger: logger.With("component", "advisor")}
}

func prompt(name string) string {
	data, err := promptFS.ReadFile("prompts/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded prompt %s: %v", name, err))
	}
	return strings.TrimSpace(string(data))
}

// MaintenanceSuggestion is the advisor's recommendation for one vehicle.
// Degraded marks a placeholder produced when the model's response for this
// car could not be decoded.
type MaintenanceSuggestion struct {
	CarID            int64
	CarLabel         string
	SuggestedActions []string
	Priority         string
	Reasoning        string
	Degraded         bool
}

// TrackPrepChecklist is a pre-track inspection list for one vehicle.
type TrackPrepChecklist struct {
	CarLabel         string
	CriticalItems    []string
	RecommendedItems []string
	Notes            string
}

// SuggestionSchema describes the per-car suggestion response.
func SuggestionSchema() extract.Schema {
	return extract.Schema{
		Name: "maintenance_suggestion",
		Fields: []extract.Field{
			{
				Name:           "suggested_actions",
				Kind:           extract.KindList,
				Required:       true,
				FallbackPrompt: "List the maintenance actions you suggest for this vehicle.",
			},
			{
				Name:           "priority",
				Kind:           extract.KindScalar,
				Required:       true,
				FallbackPrompt: "State the overall maintenance priority for this vehicle: high, medium, or low.",
			},
			{Name: "reasoning", Kind: extract.KindScalar, Default: ""},
		},
	}
}

// TrackPrepSchema describes the track prep checklist response.
func TrackPrepSchema() extract.Schema {
	return extract.Schema{
		Name: "track_prep_checklist",
		Fields: []extract.Field{
			{
				Name:           "critical_items",
				Kind:           extract.KindList,
				Required:       true,
				FallbackPrompt: "List the critical safety items to check before this vehicle goes on track.",
			},
			{
				Name:           "recommended_items",
				Kind:           extract.KindList,
				Required:       true,
				FallbackPrompt: "List the recommended but non-blocking maintenance items for this vehicle's track prep.",
			},
			{Name: "notes", Kind: extract.KindScalar, Default: ""},
		},
	}
}

// fieldRequester answers the extraction pipeline's per-field fallback
// requests, pairing the field's prompt with the subject context of the
// original request.
type fieldRequester struct {
	client  Completer
	subject string
}

func (r *fieldRequester) RequestField(ctx context.Context, field extract.Field) (string, error) {
	userPrompt := fmt.Sprintf(
		"%s\n\nSubject: %s\n\nRespond with ONLY the JSON value for %q, no other text.",
		field.FallbackPrompt, r.subject, field.Name,
	)
	return r.client.CompleteJSON(ctx, prompt("system.txt"), userPrompt)
}

func carContext(car garage.Car) map[string]any {
	return map[string]any{
		"id":               car.ID,
		"display_name":     car.DisplayName(),
		"usage_type":       string(car.UsageType),
		"current_odometer": car.CurrentOdometer,
		"notes":            car.Notes,
	}
}

func eventContext(events []garage.MaintenanceEvent) []map[string]any {
	out := make([]map[string]any, 0, len(events))
	for _, event := range events {
		out = append(out, map[string]any{
			"service_date": event.ServiceDate.Format(time.DateOnly),
			"service_type": string(event.ServiceType),
			"description":  event.Description,
			"odometer":     event.Odometer,
			"parts":        event.Parts,
		})
	}
	return out
}

func partContext(parts []garage.CarPart) []map[string]any {
	out := make([]map[string]any, 0, len(parts))
	for _, part := range parts {
		out = append(out, map[string]any{
			"category":    string(part.Category),
			"brand":       part.Brand,
			"part_number": part.PartNumber,
			"size_spec":   part.SizeSpec,
		})
	}
	return out
}

func mustJSON(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func toStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				out = append(out, trimmed)
			}
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func toString(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}
