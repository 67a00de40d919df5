package db

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go-crisiswatch/geo"
	"go-crisiswatch/types"
)

const issuesCollection = "issues"

// IssueStore wraps the 'issues' collection.
type IssueStore struct {
	Client *firestore.Client
}

func NewIssueStore(client *firestore.Client) *IssueStore {
	return &IssueStore{Client: client}
}

// openIssuesByType fetches all OPEN/IN_PROGRESS issues of the given type.
// Firestore has no native geospatial or substring operators, so proximity
// and name matching are applied in memory over this candidate set.
func (s *IssueStore) openIssuesByType(ctx context.Context, typ types.IssueType) ([]types.Issue, error) {
	iter := s.Client.Collection(issuesCollection).
		Where("type", "==", string(typ)).
		Where("status", "in", []string{string(types.StatusOpen), string(types.StatusInProgress)}).
		Documents(ctx)
	defer iter.Stop()

	var issues []types.Issue
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating issues collection: %w", err)
		}

		var issue types.Issue
		if err := doc.DataTo(&issue); err != nil {
			log.Printf("Warning: Error converting document %s to Issue: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		issue.ID = doc.Ref.ID
		issues = append(issues, issue)
	}
	return issues, nil
}

// FindNearby returns the open issue of the given type closest to pt
// within radiusKM, or nil when none qualifies.
func (s *IssueStore) FindNearby(ctx context.Context, typ types.IssueType, pt types.GeoPoint, radiusKM float64) (*types.Issue, error) {
	issues, err := s.openIssuesByType(ctx, typ)
	if err != nil {
		return nil, err
	}

	var candidates []types.Issue
	for _, issue := range issues {
		if issue.Coordinates.IsSentinel() {
			continue
		}
		if geo.DistanceKM(pt, issue.Coordinates) <= radiusKM {
			candidates = append(candidates, issue)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return geo.DistanceKM(pt, candidates[i].Coordinates) < geo.DistanceKM(pt, candidates[j].Coordinates)
	})
	return &candidates[0], nil
}

// FindByLocationName returns the first open issue of the given type whose
// stored location contains (or is contained by) the given name,
// case-insensitively.
func (s *IssueStore) FindByLocationName(ctx context.Context, typ types.IssueType, name string) (*types.Issue, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, nil
	}

	issues, err := s.openIssuesByType(ctx, typ)
	if err != nil {
		return nil, err
	}

	for i := range issues {
		stored := strings.ToLower(issues[i].Location)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, needle) || strings.Contains(needle, stored) {
			return &issues[i], nil
		}
	}
	return nil, nil
}

// Create persists a new issue. The issue's ID is used as the document
// ID; it must be set by the caller.
func (s *IssueStore) Create(ctx context.Context, issue *types.Issue) error {
	if issue.ID == "" {
		return fmt.Errorf("cannot create issue with empty ID")
	}
	_, err := s.Client.Collection(issuesCollection).Doc(issue.ID).Set(ctx, issue)
	if err != nil {
		return fmt.Errorf("error creating issue %s: %w", issue.ID, err)
	}
	return nil
}

// Update overwrites the mutable fields of an existing issue.
func (s *IssueStore) Update(ctx context.Context, issue *types.Issue) error {
	if issue.ID == "" {
		return fmt.Errorf("cannot update issue with empty ID")
	}
	updates := []firestore.Update{
		{Path: "description", Value: issue.Description},
		{Path: "severity", Value: issue.Severity},
		{Path: "aiAnalysis", Value: issue.AIAnalysis},
	}
	_, err := s.Client.Collection(issuesCollection).Doc(issue.ID).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("error updating issue %s: %w", issue.ID, err)
	}
	return nil
}

// GetByID retrieves a single issue document by its ID.
func (s *IssueStore) GetByID(ctx context.Context, id string) (types.Issue, error) {
	var issue types.Issue

	docSnap, err := s.Client.Collection(issuesCollection).Doc(id).Get(ctx)
	if err != nil {
		return issue, fmt.Errorf("error getting issue %s: %w", id, err)
	}
	if err := docSnap.DataTo(&issue); err != nil {
		return issue, fmt.Errorf("error converting document %s to Issue: %w", id, err)
	}
	issue.ID = docSnap.Ref.ID
	return issue, nil
}
