package crisis

import (
	"context"
	"fmt"
	"time"

	"go-crisiswatch/types"
)

// arbitrateUpdate asks the update-check collaborator whether the report
// adds anything to the located issue. On a material update the issue's
// severity and analysis are overwritten and the raw text is prepended to
// the description log; otherwise the issue is left untouched and the
// report is a duplicate.
func (p *Pipeline) arbitrateUpdate(ctx context.Context, text string, cls *types.ClassificationResult, issue *types.Issue) (*Result, error) {
	checkCtx, cancel := p.callCtx(ctx)
	check, err := p.UpdateChecker.CheckUpdate(checkCtx, text, cls, issue)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("update check for issue %s: %w", issue.ID, err)
	}

	if check == nil || !check.HasUpdates || check.UpdatedAnalysis == nil {
		return &Result{IsCrisis: true, Status: StatusDuplicate, Issue: issue}, nil
	}

	analysis := check.UpdatedAnalysis
	issue.AIAnalysis = analysis
	issue.Severity = clamp01(analysis.Severity.Overall)
	issue.Description = fmt.Sprintf("[UPDATED %s]\n%s\n\n---\n\n%s",
		p.timeNow().Format(time.RFC3339), text, issue.Description)

	writeCtx, cancel := p.callCtx(ctx)
	err = p.Issues.Update(writeCtx, issue)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("persisting update to issue %s: %w", issue.ID, err)
	}

	return &Result{IsCrisis: true, Status: StatusUpdated, Issue: issue}, nil
}
