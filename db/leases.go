package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const leasesCollection = "dedupLeases"

// ErrLeaseHeld is returned when another request currently owns the lease.
var ErrLeaseHeld = errors.New("dedup lease already held")

// LeaseStore hands out short-lived advisory leases keyed by crisis type
// and geo bucket. Holding the lease serializes the duplicate-lookup plus
// create/update window for reports about the same area, closing the race
// where two concurrent reports both observe "no match" and both create
// an issue.
type LeaseStore struct {
	Client *firestore.Client
}

func NewLeaseStore(client *firestore.Client) *LeaseStore {
	return &LeaseStore{Client: client}
}

// Acquire takes the lease for key. The second return is false when a
// non-expired lease exists. The create-or-steal decision runs inside a
// Firestore transaction so two contenders cannot both win.
func (s *LeaseStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	docRef := s.Client.Collection(leasesCollection).Doc(HashString(key))
	now := time.Now().UTC()

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return fmt.Errorf("error getting lease doc for %s: %w", key, err)
		}

		if err == nil {
			expiresAt, ok := doc.Data()["expiresAt"].(time.Time)
			if ok && now.Before(expiresAt) {
				return ErrLeaseHeld
			}
			// Expired lease left behind by a crashed holder; steal it.
		}

		return tx.Set(docRef, map[string]interface{}{
			"key":       key,
			"expiresAt": now.Add(ttl),
		})
	})
	if errors.Is(err, ErrLeaseHeld) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Release drops the lease. Failure to release only delays contenders
// until the TTL expires, so errors are returned for logging rather than
// retried.
func (s *LeaseStore) Release(ctx context.Context, key string) error {
	_, err := s.Client.Collection(leasesCollection).Doc(HashString(key)).Delete(ctx)
	if err != nil {
		return fmt.Errorf("error releasing lease %s: %w", key, err)
	}
	return nil
}
