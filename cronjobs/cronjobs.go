package cronjobs

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/bluesky-social/indigo/xrpc"
	"github.com/robfig/cron/v3"

	"go-crisiswatch/crisis"
	"go-crisiswatch/types"
)

// FeedCallParameters names one Bluesky feed to pull reports from.
type FeedCallParameters struct {
	uri    string
	source string
	limit  int
}

const feedMethod = "app.bsky.feed.getFeed"

// callFeed fetches a hydrated feed and runs every post through the
// ingestion pipeline. Per-post failures are logged and skipped; a feed
// pull never aborts on one bad post.
func callFeed(p FeedCallParameters, pipeline *crisis.Pipeline) {
	// Public endpoint for unauthenticated requests.
	client := &xrpc.Client{
		Client:    &http.Client{Timeout: 10 * time.Second},
		Host:      "https://public.api.bsky.app",
		UserAgent: nil,
	}

	limit := 10
	if p.limit != 0 {
		limit = p.limit
	}

	// The limit can be adjusted (min 1, max 100, default 50).
	params := map[string]interface{}{
		"feed":  p.uri,
		"limit": limit,
	}

	log.Printf("Fetching feed with params: %+v", params)

	var out types.FeedResponse
	err := client.Do(context.Background(), xrpc.Query, "json", feedMethod, params, nil, &out)
	if err != nil {
		log.Printf("Error fetching feed via xrpc: %v", err)
		return
	}

	for _, entry := range out.Feed {
		text := entry.Post.Record.Text
		if text == "" {
			continue
		}

		result, err := pipeline.Process(context.Background(), text, p.source, "")
		if err != nil {
			log.Printf("Feed report processing failed for %s: %v", entry.Post.URI, err)
			continue
		}
		log.Printf("Feed report %s -> %s", entry.Post.URI, result.Status)
	}
}

// InitCronJobs schedules the external feed pulls. Schedules are
// staggered so the feeds never hit the classifier at the same minute.
func InitCronJobs(pipeline *crisis.Pipeline) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Flood Feed: Run every 10 minutes at 0 minutes
	_, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("\nCronJob: Flood Feed Running")
		floodURI := "at://did:plc:qiknc4t5rq7yngvz7g4aezq7/app.bsky.feed.generator/aaaejsyozb6iq"
		callFeed(FeedCallParameters{uri: floodURI, source: "bluesky-flood", limit: 10}, pipeline)
	})
	if err != nil {
		log.Println("Error scheduling Flood Feed", err)
	}

	// Earthquake Feed: Run every 10 minutes at 2 minute mark
	_, err = c.AddFunc("2-59/10 * * * *", func() {
		log.Println("\nCronJob: EarthQuake Feed Running")
		earthQuakeURI := "at://did:plc:qiknc4t5rq7yngvz7g4aezq7/app.bsky.feed.generator/aaaejxlobe474"
		callFeed(FeedCallParameters{uri: earthQuakeURI, source: "bluesky-earthquake", limit: 10}, pipeline)
	})
	if err != nil {
		log.Println("Error scheduling EarthQuake Feed:", err)
	}

	// Outbreak Feed: Run every 10 minutes at 4 minutes mark
	_, err = c.AddFunc("4-59/10 * * * *", func() {
		log.Println("\nCronJob: Outbreak Feed Running")
		outbreakURI := "at://did:plc:qiknc4t5rq7yngvz7g4aezq7/app.bsky.feed.generator/aaaejwgffwqky"
		callFeed(FeedCallParameters{uri: outbreakURI, source: "bluesky-outbreak", limit: 10}, pipeline)
	})
	if err != nil {
		log.Println("Error scheduling Outbreak Feed:", err)
	}

	c.Start()
}
