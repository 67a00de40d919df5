package db

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go-crisiswatch/types"
)

const ngosCollection = "ngos"

// NGOStore wraps the responder-organization directory.
type NGOStore struct {
	Client *firestore.Client
}

func NewNGOStore(client *firestore.Client) *NGOStore {
	return &NGOStore{Client: client}
}

// FindByAddress returns all NGOs whose address contains the given
// fragment, case-insensitively. Firestore cannot express substring
// queries, so the directory is scanned and filtered in memory; the
// collection is small (hundreds of organizations at most).
func (s *NGOStore) FindByAddress(ctx context.Context, fragment string) ([]types.NGO, error) {
	needle := strings.ToLower(strings.TrimSpace(fragment))
	if needle == "" {
		return nil, nil
	}

	iter := s.Client.Collection(ngosCollection).Documents(ctx)
	defer iter.Stop()

	var matches []types.NGO
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating ngos collection: %w", err)
		}

		var ngo types.NGO
		if err := doc.DataTo(&ngo); err != nil {
			log.Printf("Warning: Error converting document %s to NGO: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		ngo.ID = doc.Ref.ID

		if strings.Contains(strings.ToLower(ngo.Address), needle) {
			matches = append(matches, ngo)
		}
	}
	return matches, nil
}
