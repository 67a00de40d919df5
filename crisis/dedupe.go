package crisis

import (
	"context"
	"log"

	"go-crisiswatch/types"
)

// Lookup is the tagged outcome of a duplicate search. Degraded marks
// that the geospatial attempt failed and only the weaker name match ran,
// so "no duplicate" cannot be fully trusted.
type Lookup struct {
	Issue    *types.Issue
	Degraded bool
}

// findDuplicate searches the active issues for one the report most
// likely refers to. With resolved coordinates it is a proximity plus
// category match within the dedup radius, nearest first; with the
// sentinel, or when the geospatial query errors, it falls back to a
// case-insensitive name match. Store failures are absorbed: availability
// over strictness.
func (p *Pipeline) findDuplicate(ctx context.Context, typ types.IssueType, pt types.GeoPoint, name string) Lookup {
	degraded := false

	if !pt.IsSentinel() {
		geoCtx, cancel := p.callCtx(ctx)
		issue, err := p.Issues.FindNearby(geoCtx, typ, pt, p.radiusKM())
		cancel()
		if err == nil {
			return Lookup{Issue: issue}
		}
		log.Printf("Duplicate check failed (likely missing index): %v. Falling back to name match.", err)
		degraded = true
	}

	nameCtx, cancel := p.callCtx(ctx)
	issue, err := p.Issues.FindByLocationName(nameCtx, typ, name)
	cancel()
	if err != nil {
		log.Printf("Name-based duplicate check failed: %v. Proceeding as new issue.", err)
		return Lookup{Degraded: true}
	}

	return Lookup{Issue: issue, Degraded: degraded}
}
