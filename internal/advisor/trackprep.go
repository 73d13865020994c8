package advisor

import (
	"context"
	"fmt"

	"crewchief/internal/extract"
	"crewchief/internal/garage"
)

// TrackPrep builds a track day checklist for one vehicle. Missing checklist
// buckets are re-requested one field at a time through the extraction
// pipeline's fallback path before the call is allowed to fail.
func (a *Advisor) TrackPrep(ctx context.Context, car garage.Car, history []garage.MaintenanceEvent) (*TrackPrepChecklist, error) {
	subject := mustJSON(map[string]any{
		"vehicle": carContext(car),
		"history": eventContext(history),
	})
	userPrompt := fmt.Sprintf(
		prompt("track_prep.txt"),
		mustJSON(carContext(car)),
		mustJSON(eventContext(history)),
	)

	raw, err := a.client.CompleteJSON(ctx, prompt("system.txt"), userPrompt)
	if err != nil {
		return nil, fmt.Errorf("track prep for %s: %w", car.DisplayName(), err)
	}

	result, err := extract.Extract(ctx, raw, TrackPrepSchema(), extract.Options{
		Logger:   a.logger,
		Fallback: &fieldRequester{client: a.client, subject: subject},
	})
	if err != nil {
		return nil, fmt.Errorf("track prep for %s: %w", car.DisplayName(), err)
	}

	return &TrackPrepChecklist{
		CarLabel:         car.DisplayName(),
		CriticalItems:    toStringSlice(result.Values["critical_items"]),
		RecommendedItems: toStringSlice(result.Values["recommended_items"]),
		Notes:            toString(result.Values["notes"]),
	}, nil
}
