package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"sync"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"

	"go-crisiswatch/types"
)

// languageClient is a singleton language client instance.
var (
	languageClient *language.Client
	clientOnce     sync.Once
)

// AnalyzeEntities sends text to the Cloud Natural Language API to extract
// named entities and returns a slice of Entity structs.
func AnalyzeEntities(ctx context.Context, client *language.Client, text string) ([]types.Entity, error) {
	req := &languagepb.AnalyzeEntitiesRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities error: %w", err)
	}

	var entities []types.Entity
	for _, e := range resp.Entities {
		var mentions []types.EntityMention
		for _, m := range e.Mentions {
			mentions = append(mentions, types.EntityMention{
				Content:     m.Text.Content,
				BeginOffset: m.Text.BeginOffset,
				Probability: m.Probability,
			})
		}
		md := make(map[string]string)
		for k, v := range e.Metadata {
			md[k] = v
		}
		entities = append(entities, types.Entity{
			Name:     e.Name,
			Type:     e.Type.String(),
			Metadata: md,
			Mentions: mentions,
		})
	}
	return entities, nil
}

// HintExtractor pulls candidate place names out of raw report text. The
// pipeline falls back to it when neither the classifier nor the caller
// supplied a location name.
type HintExtractor struct {
	Client *language.Client
}

// ExtractPlaceNames returns the LOCATION and ADDRESS entities found in
// the text, in detection order.
func (h HintExtractor) ExtractPlaceNames(ctx context.Context, text string) ([]string, error) {
	entities, err := AnalyzeEntities(ctx, h.Client, text)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entity := range entities {
		if entity.Type == "LOCATION" || entity.Type == "ADDRESS" {
			names = append(names, entity.Name)
		}
	}
	return names, nil
}

// InitLanguageClient initializes and returns a language client.
func InitLanguageClient() (*language.Client, error) {
	var err error

	clientOnce.Do(func() {
		// Decode credentials
		encodedCreds := os.Getenv("NATURAL_LANGUAGE_CREDENTIALS")
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			log.Fatalf("Failed to decode Natural language credentials: %v", err)
		}

		opt := option.WithCredentialsJSON(creds)
		languageClient, err = language.NewClient(context.Background(), opt)
		if err != nil {
			log.Fatalf("Failed to create Natural Language client: %v", err)
		}
	})

	return languageClient, err
}

func CloseLanguageClient() {
	if languageClient != nil {
		languageClient.Close()
	}
}
