package advisor

import (
	"context"
	"fmt"

	"crewchief/internal/garage"
)

// GarageSummary asks the model for a conversational status summary of the
// whole garage. No schema applies; the raw completion is returned as-is.
func (a *Advisor) GarageSummary(ctx context.Context, snapshot garage.Snapshot) (string, error) {
	garageData := map[string]any{
		"total_cars":         len(snapshot.Cars),
		"cars":               []map[string]any{},
		"maintenance_events": eventContext(snapshot.Events),
	}
	cars := make([]map[string]any, 0, len(snapshot.Cars))
	for _, car := range snapshot.Cars {
		cars = append(cars, carContext(car))
	}
	garageData["cars"] = cars
	if len(snapshot.Parts) > 0 {
		garageData["parts_profile"] = partContext(snapshot.Parts)
	}

	userPrompt := fmt.Sprintf(prompt("garage_summary.txt"), mustJSON(garageData))
	summary, err := a.client.Complete(ctx, prompt("system.txt"), userPrompt)
	if err != nil {
		return "", fmt.Errorf("garage summary: %w", err)
	}
	return summary, nil
}
