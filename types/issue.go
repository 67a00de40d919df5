package types

import "time"

type IssueType string

const (
	TypeDisaster IssueType = "disaster"
	TypeDisease  IssueType = "disease"
	TypeOthers   IssueType = "others"
)

type IssueStatus string

const (
	StatusOpen       IssueStatus = "OPEN"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusResolved   IssueStatus = "RESOLVED"
)

// GeoPoint is a plain lat/lon pair. The zero value doubles as the
// "unresolved location" sentinel.
type GeoPoint struct {
	Lat float64 `firestore:"lat" json:"lat"`
	Lon float64 `firestore:"lon" json:"lon"`
}

// IsSentinel reports whether the point is the unresolved marker (0,0).
func (p GeoPoint) IsSentinel() bool {
	return p.Lat == 0 && p.Lon == 0
}

// Issue is the canonical record for one tracked crisis.
type Issue struct {
	ID          string           `firestore:"-" json:"id"`
	Title       string           `firestore:"title" json:"title"`
	Description string           `firestore:"description" json:"description"`
	Type        IssueType        `firestore:"type" json:"type"`
	Severity    float64          `firestore:"severity" json:"severity"`
	Status      IssueStatus      `firestore:"status" json:"status"`
	PinCode     string           `firestore:"pinCode" json:"pinCode"`
	Location    string           `firestore:"location" json:"location"`
	Coordinates GeoPoint         `firestore:"coordinates" json:"coordinates"`
	Date        time.Time        `firestore:"date" json:"date"`
	AIAnalysis  *RefinedAnalysis `firestore:"aiAnalysis" json:"aiAnalysis,omitempty"`
	HandledBy   []string         `firestore:"handledBy" json:"handledBy"`
	IsEmailSent bool             `firestore:"isEmailSent" json:"isEmailSent"`
}

// NGO is a responder organization from the directory collection.
type NGO struct {
	ID      string `firestore:"-" json:"id"`
	Name    string `firestore:"name" json:"name"`
	Address string `firestore:"address" json:"address"`
	Email   string `firestore:"email" json:"email"`
}
