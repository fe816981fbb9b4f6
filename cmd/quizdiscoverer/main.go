package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quizshow"
)

func main() {
	var (
		category     = flag.String("category", "", "Focus on specific category (optional)")
		numQuestions = flag.Int("questions", 5, "Questions to generate per tier")
		dbPath       = flag.String("db", "./quiz.db", "Database path")
		logDir       = flag.String("log-dir", "log", "Directory for per-run LLM logs")
		model        = flag.String("model", quizshow.DefaultModel, "Chat model")
		apiKey       = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
	)

	flag.Parse()

	quizshow.SetVerbose(*verbose)

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	db, err := quizshow.OpenDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.CloseDB()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	existingTopics, err := db.ListTopics()
	if err != nil {
		log.Fatalf("Failed to get existing topics: %v", err)
	}

	fmt.Printf("📚 Found %d existing topics in database\n", len(existingTopics))
	for _, topic := range existingTopics {
		fmt.Printf("  - %s\n", topic)
	}
	fmt.Println()

	client := quizshow.NewOpenAIClient(*apiKey)
	suggester := quizshow.NewTopicSuggester(client)
	suggester.Model = *model

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	fmt.Printf("🎯 Generating a fresh topic")
	if *category != "" {
		fmt.Printf(" in category: %s", *category)
	}
	fmt.Println("...")

	topic, err := suggester.SuggestTopic(ctx, existingTopics, *category, nil)
	if err != nil {
		log.Fatalf("Failed to generate topic: %v", err)
	}

	fmt.Printf("✅ Generated fresh topic:\n\n")
	fmt.Printf("Topic: %s (%s)\n", topic.Topic, topic.Category)
	fmt.Printf("Description: %s\n\n", topic.Description)
	quizshow.VerboseLog("Source Material:\n%s\n", topic.SourceMaterial)

	existing, err := db.ListQuestions("")
	if err != nil {
		log.Fatalf("Failed to load stored questions: %v", err)
	}

	total := 0
	for _, tier := range []quizshow.Tier{quizshow.TierEasy, quizshow.TierMedium, quizshow.TierHard} {
		req := quizshow.GenerationRequest{
			Topic:          topic.Topic,
			Tier:           tier,
			NumQuestions:   *numQuestions,
			SourceMaterial: topic.SourceMaterial,
		}

		run, err := db.CreateRun(req)
		if err != nil {
			log.Fatalf("Failed to create run for '%s': %v", topic.Topic, err)
		}

		gen := quizshow.NewGenerator(client, existing)
		gen.SetModel(*model)
		logger, err := quizshow.NewLLMLogger(*logDir, run.ID, req)
		if err != nil {
			log.Printf("Failed to create logger for run %s: %v", run.ID, err)
		} else {
			gen.SetLogger(logger)
		}

		fmt.Printf("🚀 Run %s: %d %s questions\n", run.ID, *numQuestions, tier)
		stored, err := db.GenerateCatalog(ctx, gen, run, req)
		logger.Close()
		if err != nil {
			log.Printf("Run %s stopped early: %v", run.ID, err)
		}
		total += stored

		// later tiers must not repeat what this one added
		existing, err = db.ListQuestions("")
		if err != nil {
			log.Fatalf("Failed to reload stored questions: %v", err)
		}
	}

	fmt.Printf("🎉 Stored %d new questions on '%s'\n", total, topic.Topic)
}
