package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quizshow"
)

func main() {
	var (
		topic          = flag.String("topic", "", "Question topic (required for generation)")
		tierFlag       = flag.String("tier", "all", "Tier to generate: easy, medium, hard or all")
		numQuestions   = flag.Int("questions", 5, "Number of questions to generate per tier")
		sourceMaterial = flag.String("source", "", "Source material to base questions on")
		dbPath         = flag.String("db", "", "sqlite catalog database")
		outputFile     = flag.String("output", "", "Write generated questions to this YAML catalog")
		catalogFile    = flag.String("catalog", "", "YAML catalog to play or import")
		importCatalog  = flag.Bool("import", false, "Import -catalog into -db and exit")
		exportFile     = flag.String("export", "", "Export -db to this YAML catalog and exit")
		logDir         = flag.String("log-dir", "log", "Directory for per-run LLM logs")
		model          = flag.String("model", quizshow.DefaultModel, "Chat model")
		apiKey         = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		playMode       = flag.Bool("play", false, "Play a game in the terminal")
		seed           = flag.Uint64("seed", 0, "Seed for question order in play mode (0 = random)")
		noTimer        = flag.Bool("no-timer", false, "Play without the answer countdown")
		verbose        = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	quizshow.SetVerbose(*verbose)

	switch {
	case *playMode:
		catalog, err := openCatalog(*catalogFile, *dbPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		var rng quizshow.RandomSource
		if *seed != 0 {
			rng = quizshow.NewSeededRNG(*seed)
		}
		playGame(catalog, rng, !*noTimer)
		return

	case *importCatalog:
		if err := runImport(*catalogFile, *dbPath); err != nil {
			log.Fatal(err)
		}
		return

	case *exportFile != "":
		if err := runExport(*exportFile, *dbPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *topic == "" {
		log.Fatal("Topic is required. Use -topic flag.")
	}
	tiers, err := parseTiers(*tierFlag)
	if err != nil {
		log.Fatal(err)
	}
	if *dbPath == "" && *outputFile == "" {
		log.Fatal("Nowhere to store questions. Use -db and/or -output.")
	}

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute*time.Duration(len(tiers)))
	defer cancel()

	g := &generation{
		client: quizshow.NewOpenAIClient(*apiKey),
		model:  *model,
		logDir: *logDir,
	}
	if *dbPath != "" {
		db, err := openDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.CloseDB()
		g.db = db
	}

	var generated []quizshow.Question
	for _, tier := range tiers {
		req := quizshow.GenerationRequest{
			Topic:          *topic,
			Tier:           tier,
			NumQuestions:   *numQuestions,
			SourceMaterial: *sourceMaterial,
		}
		questions, err := g.run(ctx, req, generated)
		generated = append(generated, questions...)
		if err != nil {
			log.Printf("Generation for %s stopped early: %v", tier, err)
		}
	}

	if *outputFile != "" {
		if err := quizshow.WriteCatalogFile(*outputFile, &quizshow.Catalog{Questions: generated}); err != nil {
			log.Fatalf("Failed to write catalog: %v", err)
		}
		log.Printf("Catalog saved to: %s", *outputFile)
	}

	log.Printf("Generated %d questions on '%s'", len(generated), *topic)
}

func parseTiers(s string) ([]quizshow.Tier, error) {
	if s == "all" || s == "" {
		return []quizshow.Tier{quizshow.TierEasy, quizshow.TierMedium, quizshow.TierHard}, nil
	}
	tier := quizshow.Tier(s)
	if !tier.Valid() {
		return nil, fmt.Errorf("invalid tier %q (easy, medium, hard or all)", s)
	}
	return []quizshow.Tier{tier}, nil
}

func openDB(path string) (*quizshow.DB, error) {
	db, err := quizshow.OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.CreateTables(); err != nil {
		db.CloseDB()
		return nil, err
	}
	return db, nil
}

// openCatalog loads the catalog to play: file first, then database, then
// the built-in questions.
func openCatalog(file, dbPath string) (*quizshow.Catalog, error) {
	if file != "" {
		return quizshow.LoadCatalogFile(file)
	}
	if dbPath == "" {
		return quizshow.DefaultCatalog(), nil
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.CloseDB()

	catalog, err := db.LoadCatalog(nil)
	if errors.Is(err, quizshow.ErrNotFound) {
		log.Printf("Database %s has no questions, using the built-in catalog", dbPath)
		return quizshow.DefaultCatalog(), nil
	}
	return catalog, err
}

func runImport(file, dbPath string) error {
	if file == "" || dbPath == "" {
		return errors.New("-import needs -catalog and -db")
	}
	catalog, err := quizshow.LoadCatalogFile(file)
	if err != nil {
		return err
	}
	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	added, err := db.ImportCatalog(catalog)
	if err != nil {
		return fmt.Errorf("import stopped after %d questions: %w", added, err)
	}
	log.Printf("Imported %d of %d questions into %s", added, len(catalog.Questions), dbPath)
	return nil
}

func runExport(file, dbPath string) error {
	if dbPath == "" {
		return errors.New("-export needs -db")
	}
	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	catalog, err := db.LoadCatalog(nil)
	if err != nil {
		return err
	}
	if err := quizshow.WriteCatalogFile(file, catalog); err != nil {
		return err
	}
	log.Printf("Exported %d questions to %s", len(catalog.Questions), file)
	return nil
}

type generation struct {
	client quizshow.ChatCompleter
	model  string
	logDir string
	db     *quizshow.DB
}

// run generates one tier. With a database the questions are stored as they
// arrive and deduplicated against everything stored; otherwise only against
// this invocation's output.
func (g *generation) run(ctx context.Context, req quizshow.GenerationRequest, seen []quizshow.Question) ([]quizshow.Question, error) {
	existing := seen
	runID := fmt.Sprintf("%s-%d", req.Tier, time.Now().Unix())
	var run *quizshow.GenerationRun

	if g.db != nil {
		stored, err := g.db.ListQuestions("")
		if err != nil {
			return nil, err
		}
		existing = append(stored, seen...)
		run, err = g.db.CreateRun(req)
		if err != nil {
			return nil, err
		}
		runID = run.ID
	}

	gen := quizshow.NewGenerator(g.client, existing)
	gen.SetModel(g.model)

	logger, err := quizshow.NewLLMLogger(g.logDir, runID, req)
	if err != nil {
		log.Printf("Failed to create logger for run %s: %v", runID, err)
	} else {
		gen.SetLogger(logger)
		defer logger.Close()
		quizshow.VerboseLog("Logging model traffic to %s", logger.Path())
	}

	if g.db == nil {
		return gen.GenerateQuestions(ctx, req)
	}

	before, err := g.db.ListQuestions(req.Tier)
	if err != nil {
		return nil, err
	}
	_, genErr := g.db.GenerateCatalog(ctx, gen, run, req)

	after, err := g.db.ListQuestions(req.Tier)
	if err != nil {
		return nil, err
	}
	return after[len(before):], genErr
}
