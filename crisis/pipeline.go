package crisis

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-crisiswatch/geo"
)

const (
	leaseRetryInterval  = 200 * time.Millisecond
	leaseReleaseTimeout = 5 * time.Second
)

// Process runs one report through the full pipeline: classify, resolve
// location, look for an active duplicate, then update or create. The
// lookup-then-write window runs under an advisory lease keyed by type
// and area so two concurrent reports about the same event cannot both
// create an issue.
func (p *Pipeline) Process(ctx context.Context, text, source, locationHint string) (*Result, error) {
	clsCtx, cancel := p.callCtx(ctx)
	cls, err := p.Classifier.Classify(clsCtx, text, source, locationHint)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	if cls == nil {
		return nil, fmt.Errorf("%w: classifier returned no result", ErrAnalysisFailed)
	}

	if !cls.IsCrisis {
		result := &Result{IsCrisis: false, Status: StatusNonCrisis}
		if p.RefineNonCrisis {
			refineCtx, cancel := p.callCtx(ctx)
			analysis, err := p.Refiner.Refine(refineCtx, text, cls)
			cancel()
			if err != nil {
				return nil, fmt.Errorf("refining non-crisis report: %w", err)
			}
			result.Analysis = analysis
		}
		return result, nil
	}

	typ := CanonicalType(cls.TypeClassification.Type)
	locationName, pt := p.resolveLocation(ctx, cls, locationHint, text)

	leaseKey := geo.NameKey(typ, locationName)
	if !pt.IsSentinel() {
		leaseKey = geo.BucketKey(typ, pt, p.bucketDeg())
	}

	if err := p.acquireLease(ctx, leaseKey); err != nil {
		return nil, err
	}
	defer func() {
		// Release runs detached from the request context but under its
		// own bound, so a hung store call cannot pin the goroutine.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leaseReleaseTimeout)
		defer cancel()
		if err := p.Leases.Release(releaseCtx, leaseKey); err != nil {
			log.Printf("Failed to release dedup lease %s: %v", leaseKey, err)
		}
	}()

	lookup := p.findDuplicate(ctx, typ, pt, locationName)
	if lookup.Degraded {
		log.Printf("Duplicate lookup degraded for %s report near %q", typ, locationName)
	}

	if lookup.Issue != nil {
		log.Printf("Found existing issue %s, checking for updates...", lookup.Issue.ID)
		return p.arbitrateUpdate(ctx, text, cls, lookup.Issue)
	}

	return p.synthesizeIssue(ctx, text, cls, locationName, pt)
}

// acquireLease polls until the lease is free, the context ends, or the
// lease TTL has elapsed. A holder that finishes first either created the
// issue this report duplicates or proved there is none, so waiting is
// the correct behavior for contenders.
func (p *Pipeline) acquireLease(ctx context.Context, key string) error {
	deadline := time.Now().Add(p.leaseTTL())

	for {
		acquired, err := p.Leases.Acquire(ctx, key, p.leaseTTL())
		if err != nil {
			return fmt.Errorf("acquiring dedup lease %s: %w", key, err)
		}
		if acquired {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("dedup lease %s still held after %s", key, p.leaseTTL())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(leaseRetryInterval):
		}
	}
}
