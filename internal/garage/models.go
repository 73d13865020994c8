package garage

import (
	"fmt"
	"strings"
	"time"
)

// UsageType describes how a vehicle is primarily used.
type UsageType string

const (
	UsageDaily   UsageType = "daily"
	UsageTrack   UsageType = "track"
	UsageProject UsageType = "project"
	UsageShow    UsageType = "show"
	UsageOther   UsageType = "other"
)

var allUsageTypes = []UsageType{UsageDaily, UsageTrack, UsageProject, UsageShow, UsageOther}

// ServiceType categorizes a maintenance event.
type ServiceType string

const (
	ServiceOilChange  ServiceType = "oil_change"
	ServiceBrakes     ServiceType = "brakes"
	ServiceTires      ServiceType = "tires"
	ServiceFluids     ServiceType = "fluids"
	ServiceInspection ServiceType = "inspection"
	ServiceMod        ServiceType = "mod"
	ServiceOther      ServiceType = "other"
)

var allServiceTypes = []ServiceType{
	ServiceOilChange,
	ServiceBrakes,
	ServiceTires,
	ServiceFluids,
	ServiceInspection,
	ServiceMod,
	ServiceOther,
}

// PartCategory classifies a tracked part or consumable.
type PartCategory string

const (
	PartOil        PartCategory = "oil"
	PartOilFilter  PartCategory = "oil_filter"
	PartAirFilter  PartCategory = "air_filter"
	PartBrakePads  PartCategory = "brake_pads"
	PartBrakeFluid PartCategory = "brake_fluid"
	PartTires      PartCategory = "tires"
	PartBattery    PartCategory = "battery"
	PartWipers     PartCategory = "wipers"
	PartCoolant    PartCategory = "coolant"
	PartOtherPart  PartCategory = "other"
)

var allPartCategories = []PartCategory{
	PartOil,
	PartOilFilter,
	PartAirFilter,
	PartBrakePads,
	PartBrakeFluid,
	PartTires,
	PartBattery,
	PartWipers,
	PartCoolant,
	PartOtherPart,
}

// AllUsageTypes returns the ordered list of known usage types.
func AllUsageTypes() []UsageType {
	cp := make([]UsageType, len(allUsageTypes))
	copy(cp, allUsageTypes)
	return cp
}

// AllServiceTypes returns the ordered list of known service types.
func AllServiceTypes() []ServiceType {
	cp := make([]ServiceType, len(allServiceTypes))
	copy(cp, allServiceTypes)
	return cp
}

// AllPartCategories returns the ordered list of known part categories.
func AllPartCategories() []PartCategory {
	cp := make([]PartCategory, len(allPartCategories))
	copy(cp, allPartCategories)
	return cp
}

// ParseUsageType converts a string into a known UsageType.
func ParseUsageType(value string) (UsageType, bool) {
	normalized := UsageType(strings.ToLower(strings.TrimSpace(value)))
	for _, usage := range allUsageTypes {
		if usage == normalized {
			return usage, true
		}
	}
	return "", false
}

// ParseServiceType converts a string into a known ServiceType.
func ParseServiceType(value string) (ServiceType, bool) {
	normalized := ServiceType(strings.ToLower(strings.TrimSpace(value)))
	for _, service := range allServiceTypes {
		if service == normalized {
			return service, true
		}
	}
	return "", false
}

// ParsePartCategory converts a string into a known PartCategory.
func ParsePartCategory(value string) (PartCategory, bool) {
	normalized := PartCategory(strings.ToLower(strings.TrimSpace(value)))
	for _, category := range allPartCategories {
		if category == normalized {
			return category, true
		}
	}
	return "", false
}

// Car represents a vehicle tracked in the garage.
type Car struct {
	ID              int64
	Nickname        string
	Year            int
	Make            string
	Model           string
	Trim            string
	VIN             string
	UsageType       UsageType
	CurrentOdometer int64
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName returns a human-readable label for the car.
func (c Car) DisplayName() string {
	base := fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
	if strings.TrimSpace(c.Nickname) != "" {
		return fmt.Sprintf("%s (%s)", c.Nickname, base)
	}
	return base
}

// MaintenanceEvent represents one service performed on a vehicle.
type MaintenanceEvent struct {
	ID          int64
	CarID       int64
	ServiceDate time.Time
	Odometer    int64
	ServiceType ServiceType
	Description string
	Parts       string
	Cost        float64
	Location    string
	CreatedAt   time.Time
}

// CarPart records the preferred part or consumable spec for a vehicle.
type CarPart struct {
	ID         int64
	CarID      int64
	Category   PartCategory
	Brand      string
	PartNumber string
	SizeSpec   string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MaintenanceInterval defines how often a service type is due for a vehicle.
// A zero IntervalMiles or IntervalMonths disables that dimension.
type MaintenanceInterval struct {
	ID                  int64
	CarID               int64
	ServiceType         ServiceType
	IntervalMiles       int64
	IntervalMonths      int
	LastServiceDate     time.Time
	LastServiceOdometer int64
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DueService describes whether one interval is due and why.
type DueService struct {
	ServiceType    ServiceType
	IntervalMiles  int64
	IntervalMonths int
	MilesUntilDue  int64
	MonthsUntilDue int
	HasMilesCheck  bool
	HasMonthsCheck bool
	Due            bool
	Reason         string
}

// Snapshot bundles the garage data handed to the advisor as LLM context.
type Snapshot struct {
	Cars   []Car
	Events []MaintenanceEvent
	Parts  []CarPart
}

// EventsFor returns the snapshot events belonging to one car.
func (s Snapshot) EventsFor(carID int64) []MaintenanceEvent {
	var events []MaintenanceEvent
	for _, event := range s.Events {
		if event.CarID == carID {
			events = append(events, event)
		}
	}
	return events
}

// PartsFor returns the snapshot parts belonging to one car.
func (s Snapshot) PartsFor(carID int64) []CarPart {
	var parts []CarPart
	for _, part := range s.Parts {
		if part.CarID == carID {
			parts = append(parts, part)
		}
	}
	return parts
}

// ServiceCost aggregates spend for one service type on one car.
type ServiceCost struct {
	ServiceType ServiceType
	Count       int
	Total       float64
	Average     float64
	Max         float64
	Min         float64
}

// CarCosts aggregates spend for one car across service types.
type CarCosts struct {
	CarID  int64
	Total  float64
	Count  int
	ByType []ServiceCost
}

// CostPerMile summarizes maintenance spend against miles driven.
type CostPerMile struct {
	TotalCost   float64
	TotalMiles  int64
	CostPerMile float64
}
