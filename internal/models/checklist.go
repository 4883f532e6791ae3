package models

// Checklist categories. The set is closed: a record outside it is rejected at load time.
const (
	CategoryMatchStatistics       = "Match Statistics"
	CategoryHeadToHeadHistorical  = "Head To Head Historical"
	CategorySurfacePerformance    = "Surface Performance"
	CategoryObservablePsychology  = "Observable Psychology"
	CategoryTacticalPatterns      = "Tactical Patterns"
	CategoryPhysicalObservable    = "Physical Observable"
	CategoryTechnicalShots        = "Technical Shots"
	CategoryRecentForm            = "Recent Form"
	CategoryTournamentContext     = "Tournament Context"
	CategoryEnvironmentalExternal = "Environmental External"
	CategoryOpponentAnalysis      = "Opponent Analysis"
	CategoryEquipmentTechnical    = "Equipment Technical"
	CategoryServeAnalysis         = "Serve Analysis"
	CategoryReturnAnalysis        = "Return Analysis"
	CategoryMatchDynamics         = "Match Dynamics"
	CategoryCourtMovement         = "Court Movement"
	CategoryDecisionMaking        = "Decision Making"
)

// AccessibilityPublic marks a component whose data is openly published.
const AccessibilityPublic = "Publicly Available"

// ChecklistCategories lists every known category in framework order.
var ChecklistCategories = []string{
	CategoryMatchStatistics,
	CategoryHeadToHeadHistorical,
	CategorySurfacePerformance,
	CategoryObservablePsychology,
	CategoryTacticalPatterns,
	CategoryPhysicalObservable,
	CategoryTechnicalShots,
	CategoryRecentForm,
	CategoryTournamentContext,
	CategoryEnvironmentalExternal,
	CategoryOpponentAnalysis,
	CategoryEquipmentTechnical,
	CategoryServeAnalysis,
	CategoryReturnAnalysis,
	CategoryMatchDynamics,
	CategoryCourtMovement,
	CategoryDecisionMaking,
}

var checklistCategorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ChecklistCategories))
	for _, c := range ChecklistCategories {
		m[c] = struct{}{}
	}
	return m
}()

// IsChecklistCategory reports whether c belongs to the closed category set.
func IsChecklistCategory(c string) bool {
	_, ok := checklistCategorySet[c]
	return ok
}

// ComponentRecord is one checklist entry: a candidate predictive factor.
type ComponentRecord struct {
	ID                string `json:"id"`
	Category          string `json:"category"`
	Component         string `json:"component"`
	Accessibility     string `json:"accessibility"`
	RealTimeAvailable bool   `json:"real_time_available"`
	DataSource        string `json:"data_source"`
	EvidenceBased     bool   `json:"evidence_based"`
}

// IsPublic reports whether the component's data is publicly available.
func (c ComponentRecord) IsPublic() bool {
	return c.Accessibility == AccessibilityPublic
}

// ChecklistSummary holds the headline counts of a checklist snapshot.
type ChecklistSummary struct {
	TotalComponents   int `json:"total_components"`
	Categories        int `json:"categories"`
	RealTimeAvailable int `json:"real_time_available"`
	EvidenceBased     int `json:"evidence_based"`
	PubliclyAvailable int `json:"publicly_available"`
}
