package advisor

import (
	"context"
	"fmt"

	"crewchief/internal/extract"
	"crewchief/internal/garage"
)

// SuggestMaintenance produces one suggestion per car in the snapshot. Each
// car gets its own narrow request so responses stay under the model's
// truncation budget. A car whose response cannot be decoded gets a marked
// placeholder suggestion instead of failing the batch; a transport failure
// fails the batch, since every remaining request would fail the same way.
func (a *Advisor) SuggestMaintenance(ctx context.Context, snapshot garage.Snapshot) ([]MaintenanceSuggestion, error) {
	suggestions := make([]MaintenanceSuggestion, 0, len(snapshot.Cars))
	for _, car := range snapshot.Cars {
		subject := mustJSON(carContext(car))
		userPrompt := fmt.Sprintf(
			prompt("suggest_car.txt"),
			subject,
			mustJSON(eventContext(snapshot.EventsFor(car.ID))),
			mustJSON(partContext(snapshot.PartsFor(car.ID))),
		)

		raw, err := a.client.CompleteJSON(ctx, prompt("system.txt"), userPrompt)
		if err != nil {
			return nil, fmt.Errorf("suggest for %s: %w", car.DisplayName(), err)
		}

		result, err := extract.Extract(ctx, raw, SuggestionSchema(), extract.Options{
			Logger:   a.logger,
			Fallback: &fieldRequester{client: a.client, subject: subject},
		})
		if err != nil {
			a.logger.Warn("suggestion decode failed", "car", car.DisplayName(), "error", err)
			suggestions = append(suggestions, degradedSuggestion(car, err))
			continue
		}

		suggestions = append(suggestions, MaintenanceSuggestion{
			CarID:            car.ID,
			CarLabel:         car.DisplayName(),
			SuggestedActions: toStringSlice(result.Values["suggested_actions"]),
			Priority:         toString(result.Values["priority"]),
			Reasoning:        toString(result.Values["reasoning"]),
		})
	}
	return suggestions, nil
}

func degradedSuggestion(car garage.Car, cause error) MaintenanceSuggestion {
	return MaintenanceSuggestion{
		CarID:            car.ID,
		CarLabel:         car.DisplayName(),
		SuggestedActions: []string{"Unable to generate suggestions, review maintenance history manually"},
		Priority:         "medium",
		Reasoning:        fmt.Sprintf("response could not be decoded: %v", cause),
		Degraded:         true,
	}
}
