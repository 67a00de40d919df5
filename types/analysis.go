package types

// Coordinates as they appear in classifier payloads. Pointers so a
// missing field is distinguishable from an explicit zero.
type Coordinates struct {
	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`
}

type ClassifiedLocation struct {
	Name        string       `json:"name"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type TypeClassification struct {
	Type string `json:"type"`
}

// ClassificationResult is the first-pass judgment from the classification
// model. The top-level Coordinates field mirrors an older response shape
// some model versions still emit.
type ClassificationResult struct {
	IsCrisis           bool               `json:"is_crisis"`
	Location           ClassifiedLocation `json:"location"`
	TypeClassification TypeClassification `json:"type_classification"`
	Coordinates        *Coordinates       `json:"coordinates,omitempty"`
	SeverityHint       float64            `json:"severity_hint,omitempty"`
}

type SeverityBreakdown struct {
	Overall    float64            `firestore:"overall" json:"overall"`
	Dimensions map[string]float64 `firestore:"dimensions" json:"dimensions,omitempty"`
}

type Urgency struct {
	Level string `firestore:"level" json:"level"`
}

// RefinedAnalysis is the second-pass analysis snapshot. Stored verbatim
// on an Issue as its latest aiAnalysis.
type RefinedAnalysis struct {
	Severity           SeverityBreakdown  `firestore:"severity" json:"severity"`
	TypeClassification TypeClassification `firestore:"typeClassification" json:"type_classification"`
	Location           ClassifiedLocation `firestore:"location" json:"location"`
	Urgency            Urgency            `firestore:"urgency" json:"urgency"`
}

// UpdateCheckResult is the verdict on whether a new report carries
// material new information for an already-tracked issue.
type UpdateCheckResult struct {
	HasUpdates      bool             `json:"has_updates"`
	UpdatedAnalysis *RefinedAnalysis `json:"updated_analysis,omitempty"`
}
