package crisis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"go-crisiswatch/types"
)

// synthesizeIssue builds and persists a brand-new issue. Refinement
// always runs on this path; the classification alone lacks the severity
// dimensions and urgency level the record carries.
func (p *Pipeline) synthesizeIssue(ctx context.Context, text string, cls *types.ClassificationResult, locationName string, pt types.GeoPoint) (*Result, error) {
	refineCtx, cancel := p.callCtx(ctx)
	refined, err := p.Refiner.Refine(refineCtx, text, cls)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("refining new issue: %w", err)
	}

	rawType := refined.TypeClassification.Type
	if rawType == "" {
		rawType = "Others"
	}

	ngoCtx, cancel := p.callCtx(ctx)
	ngos, err := p.NGOs.FindByAddress(ngoCtx, locationName)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("matching responder organizations: %w", err)
	}
	handledBy := make([]string, 0, len(ngos))
	for _, ngo := range ngos {
		handledBy = append(handledBy, ngo.ID)
	}

	issue := &types.Issue{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("Crisis Alert: %s in %s", rawType, locationName),
		Description: text,
		Type:        CanonicalType(rawType),
		Severity:    clamp01(refined.Severity.Overall),
		Status:      types.StatusOpen,
		PinCode:     "000000",
		Location:    locationName,
		Coordinates: pt,
		Date:        p.timeNow(),
		AIAnalysis:  refined,
		HandledBy:   handledBy,
		IsEmailSent: false,
	}

	createCtx, cancel := p.callCtx(ctx)
	err = p.Issues.Create(createCtx, issue)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("persisting new issue: %w", err)
	}

	return &Result{IsCrisis: true, Status: StatusCreated, Issue: issue}, nil
}
