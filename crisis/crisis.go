// Package crisis implements the report ingestion pipeline: classify a
// free-text report, resolve its location, find a matching active issue
// within the dedup radius, and either create, update, or drop it.
package crisis

import (
	"context"
	"errors"
	"time"

	"go-crisiswatch/types"
)

// ErrAnalysisFailed marks a report that could not be classified at all.
// It is the only fatal error with its own kind; everything else is
// wrapped store or collaborator failure.
var ErrAnalysisFailed = errors.New("crisis analysis failed")

// Classifier is the first-pass AI judgment collaborator.
type Classifier interface {
	Classify(ctx context.Context, text, source, locationHint string) (*types.ClassificationResult, error)
}

// Refiner produces the full severity/urgency breakdown.
type Refiner interface {
	Refine(ctx context.Context, text string, cls *types.ClassificationResult) (*types.RefinedAnalysis, error)
}

// UpdateChecker decides whether a report materially updates a tracked
// issue.
type UpdateChecker interface {
	CheckUpdate(ctx context.Context, text string, cls *types.ClassificationResult, issue *types.Issue) (*types.UpdateCheckResult, error)
}

// Geocoder resolves place names to coordinates. ok is false when the
// geocoder had no results; both that and an error are soft failures.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (pt types.GeoPoint, ok bool, err error)
}

// IssueStore is the persistence boundary for canonical crisis records.
type IssueStore interface {
	FindNearby(ctx context.Context, typ types.IssueType, pt types.GeoPoint, radiusKM float64) (*types.Issue, error)
	FindByLocationName(ctx context.Context, typ types.IssueType, name string) (*types.Issue, error)
	Create(ctx context.Context, issue *types.Issue) error
	Update(ctx context.Context, issue *types.Issue) error
}

// NGODirectory looks up responder organizations by address fragment.
type NGODirectory interface {
	FindByAddress(ctx context.Context, fragment string) ([]types.NGO, error)
}

// Leaser hands out the advisory leases that serialize the
// lookup-then-write window per type and area. acquired is false when the
// lease is currently held elsewhere.
type Leaser interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (acquired bool, err error)
	Release(ctx context.Context, key string) error
}

// PlaceHinter extracts candidate place names from raw text. Optional;
// used only when neither the classifier nor the caller named a place.
type PlaceHinter interface {
	ExtractPlaceNames(ctx context.Context, text string) ([]string, error)
}

// Status is the terminal outcome of one ingested report.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusDuplicate Status = "duplicate"
	StatusNonCrisis Status = "non-crisis"
)

// Result is what the pipeline hands back to the submitting boundary.
type Result struct {
	IsCrisis bool                   `json:"is_crisis"`
	Status   Status                 `json:"status"`
	Issue    *types.Issue           `json:"issue,omitempty"`
	Analysis *types.RefinedAnalysis `json:"analysis,omitempty"`
}

// Pipeline wires the collaborators together. All fields must be set
// except Hinter, which may be nil.
type Pipeline struct {
	Classifier    Classifier
	Refiner       Refiner
	UpdateChecker UpdateChecker
	Geocoder      Geocoder
	Issues        IssueStore
	NGOs          NGODirectory
	Leases        Leaser
	Hinter        PlaceHinter

	// RadiusKM is the dedup proximity window. LeaseBucketDeg sizes the
	// lease grid cells; it should stay roughly in step with RadiusKM.
	RadiusKM       float64
	LeaseTTL       time.Duration
	LeaseBucketDeg float64

	// CallTimeout bounds every collaborator call. Zero disables the
	// bound.
	CallTimeout time.Duration

	// RefineNonCrisis controls whether non-crisis reports still get an
	// informational refined analysis.
	RefineNonCrisis bool

	// now is a test seam.
	now func() time.Time
}

const (
	defaultRadiusKM  = 20.0
	defaultLeaseTTL  = 30 * time.Second
	defaultBucketDeg = 0.2
)

func (p *Pipeline) radiusKM() float64 {
	if p.RadiusKM > 0 {
		return p.RadiusKM
	}
	return defaultRadiusKM
}

func (p *Pipeline) leaseTTL() time.Duration {
	if p.LeaseTTL > 0 {
		return p.LeaseTTL
	}
	return defaultLeaseTTL
}

func (p *Pipeline) bucketDeg() float64 {
	if p.LeaseBucketDeg > 0 {
		return p.LeaseBucketDeg
	}
	return defaultBucketDeg
}

func (p *Pipeline) timeNow() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

func (p *Pipeline) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.CallTimeout)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
