package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"go-crisiswatch/config"
	"go-crisiswatch/cronjobs"
	"go-crisiswatch/crisis"
	"go-crisiswatch/db"
	"go-crisiswatch/geocode"
	"go-crisiswatch/mlmodel"
	"go-crisiswatch/nlp"
	"go-crisiswatch/refinement"
	"go-crisiswatch/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Print and check env
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}
	fmt.Println("OPENAI_API_KEY loaded")

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	issueStore := db.NewIssueStore(firestoreClient)
	refiner := refinement.NewClient(openai.NewClient(apiKey), cfg.OpenAIModel)

	pipeline := &crisis.Pipeline{
		Classifier:      mlmodel.NewClient(cfg.ClassifierURL),
		Refiner:         refiner,
		UpdateChecker:   refiner,
		Geocoder:        geocode.Client{},
		Issues:          issueStore,
		NGOs:            db.NewNGOStore(firestoreClient),
		Leases:          db.NewLeaseStore(firestoreClient),
		RadiusKM:        cfg.DedupeRadiusKM,
		LeaseTTL:        cfg.LeaseTTL,
		LeaseBucketDeg:  cfg.LeaseBucketDeg,
		CallTimeout:     cfg.CollaboratorTimeout,
		RefineNonCrisis: cfg.RefineNonCrisis,
	}

	// The entity-based location hint is optional; only wire it when
	// Natural Language credentials are configured.
	if os.Getenv("NATURAL_LANGUAGE_CREDENTIALS") != "" {
		langClient, err := nlp.InitLanguageClient()
		if err != nil {
			log.Fatalf("Failed to create Natural Language client: %v", err)
		}
		defer nlp.CloseLanguageClient()
		pipeline.Hinter = nlp.HintExtractor{Client: langClient}
	}

	// Initialize cron jobs
	if cfg.FeedCronEnabled {
		cronjobs.InitCronJobs(pipeline)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := routes.SetupRouter(pipeline, issueStore)
	if err := r.Run(cfg.BindAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
