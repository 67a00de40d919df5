package crisis_test

import (
	"context"
	"strings"
	"time"

	"go-crisiswatch/geo"
	"go-crisiswatch/types"
)

type fakeClassifier struct {
	result *types.ClassificationResult
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, text, source, locationHint string) (*types.ClassificationResult, error) {
	return f.result, f.err
}

type fakeRefiner struct {
	analysis *types.RefinedAnalysis
	err      error
	calls    int
}

func (f *fakeRefiner) Refine(ctx context.Context, text string, cls *types.ClassificationResult) (*types.RefinedAnalysis, error) {
	f.calls++
	return f.analysis, f.err
}

type fakeUpdateChecker struct {
	result *types.UpdateCheckResult
	err    error
	calls  int
}

func (f *fakeUpdateChecker) CheckUpdate(ctx context.Context, text string, cls *types.ClassificationResult, issue *types.Issue) (*types.UpdateCheckResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeGeocoder struct {
	pt    types.GeoPoint
	ok    bool
	err   error
	calls []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (types.GeoPoint, bool, error) {
	f.calls = append(f.calls, place)
	return f.pt, f.ok, f.err
}

// fakeStore mirrors the store's matching semantics over an in-memory
// slice.
type fakeStore struct {
	issues []types.Issue

	nearbyErr error
	nameErr   error
	createErr error
	updateErr error

	created []types.Issue
	updated []types.Issue
}

func (f *fakeStore) open(typ types.IssueType) []types.Issue {
	var out []types.Issue
	for _, issue := range f.issues {
		if issue.Type != typ {
			continue
		}
		if issue.Status != types.StatusOpen && issue.Status != types.StatusInProgress {
			continue
		}
		out = append(out, issue)
	}
	return out
}

func (f *fakeStore) FindNearby(ctx context.Context, typ types.IssueType, pt types.GeoPoint, radiusKM float64) (*types.Issue, error) {
	if f.nearbyErr != nil {
		return nil, f.nearbyErr
	}
	var best *types.Issue
	var bestDist float64
	for _, issue := range f.open(typ) {
		if issue.Coordinates.IsSentinel() {
			continue
		}
		d := geo.DistanceKM(pt, issue.Coordinates)
		if d > radiusKM {
			continue
		}
		if best == nil || d < bestDist {
			copied := issue
			best = &copied
			bestDist = d
		}
	}
	return best, nil
}

func (f *fakeStore) FindByLocationName(ctx context.Context, typ types.IssueType, name string) (*types.Issue, error) {
	if f.nameErr != nil {
		return nil, f.nameErr
	}
	needle := strings.ToLower(name)
	for _, issue := range f.open(typ) {
		stored := strings.ToLower(issue.Location)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, needle) || strings.Contains(needle, stored) {
			copied := issue
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, issue *types.Issue) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *issue)
	f.issues = append(f.issues, *issue)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, issue *types.Issue) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *issue)
	for i := range f.issues {
		if f.issues[i].ID == issue.ID {
			f.issues[i] = *issue
		}
	}
	return nil
}

type fakeDirectory struct {
	ngos []types.NGO
	err  error
}

func (f *fakeDirectory) FindByAddress(ctx context.Context, fragment string) ([]types.NGO, error) {
	if f.err != nil {
		return nil, f.err
	}
	needle := strings.ToLower(fragment)
	var matches []types.NGO
	for _, ngo := range f.ngos {
		if strings.Contains(strings.ToLower(ngo.Address), needle) {
			matches = append(matches, ngo)
		}
	}
	return matches, nil
}

type fakeLeaser struct {
	busyTurns int
	acquires  []string
	releases  []string

	releaseBounded bool
}

func (f *fakeLeaser) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	f.acquires = append(f.acquires, key)
	if f.busyTurns > 0 {
		f.busyTurns--
		return false, nil
	}
	return true, nil
}

func (f *fakeLeaser) Release(ctx context.Context, key string) error {
	_, f.releaseBounded = ctx.Deadline()
	f.releases = append(f.releases, key)
	return nil
}

type fakeHinter struct {
	names []string
	err   error
	calls int
}

func (f *fakeHinter) ExtractPlaceNames(ctx context.Context, text string) ([]string, error) {
	f.calls++
	return f.names, f.err
}

func floatPtr(v float64) *float64 { return &v }
