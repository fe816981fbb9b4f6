package quizshow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// Run states
const (
	RunGenerating = "generating"
	RunCompleted  = "completed"
	RunFailed     = "failed"
)

// DB is the question catalog store
type DB struct {
	db *sql.DB
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

func (db *DB) CloseDB() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS generation_runs (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			tier TEXT NOT NULL,
			num_questions INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'generating'
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			run_id TEXT,
			tier TEXT NOT NULL,
			text TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_answer INTEGER NOT NULL,
			hint TEXT,
			debug_code TEXT,
			poll TEXT,
			topic TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS questions_tier ON questions (tier)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// CreateRun records a new generation run and returns it
func (db *DB) CreateRun(req GenerationRequest) (*GenerationRun, error) {
	run := &GenerationRun{
		ID:           uuid.NewString(),
		Topic:        req.Topic,
		Tier:         req.Tier,
		NumQuestions: req.NumQuestions,
		CreatedAt:    time.Now().UTC(),
		Status:       RunGenerating,
	}
	_, err := db.db.Exec(
		"INSERT INTO generation_runs (id, topic, tier, num_questions, created_at, status) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Topic, run.Tier, run.NumQuestions, run.CreatedAt, run.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

func (db *DB) GetRun(id string) (*GenerationRun, error) {
	var run GenerationRun
	err := db.db.QueryRow(
		"SELECT id, topic, tier, num_questions, created_at, status FROM generation_runs WHERE id = ?",
		id,
	).Scan(&run.ID, &run.Topic, &run.Tier, &run.NumQuestions, &run.CreatedAt, &run.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns runs newest first, optionally limited by count
func (db *DB) ListRuns(limit int) ([]GenerationRun, error) {
	query := "SELECT id, topic, tier, num_questions, created_at, status FROM generation_runs ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []GenerationRun
	for rows.Next() {
		var run GenerationRun
		if err := rows.Scan(&run.ID, &run.Topic, &run.Tier, &run.NumQuestions, &run.CreatedAt, &run.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// ListTopics returns the distinct topics of all stored questions and runs
func (db *DB) ListTopics() ([]string, error) {
	rows, err := db.db.Query(`SELECT topic FROM generation_runs
		UNION SELECT topic FROM questions WHERE topic IS NOT NULL AND topic != ''
		ORDER BY topic`)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

func (db *DB) UpdateRunStatus(id, status string) error {
	_, err := db.db.Exec("UPDATE generation_runs SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}
	return nil
}

// CreateQuestion stores q, assigning a key when it has none. runID may be
// empty for imported questions. q.ID is set to the row id.
func (db *DB) CreateQuestion(q *Question, runID string) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("refusing to store question %q: %w", q.Text, err)
	}
	if q.Key == "" {
		q.Key = uuid.NewString()
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}
	poll, err := json.Marshal(q.Poll)
	if err != nil {
		return fmt.Errorf("failed to marshal poll: %w", err)
	}

	res, err := db.db.Exec(
		`INSERT INTO questions (key, run_id, tier, text, options, correct_answer, hint, debug_code, poll, topic, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Key, nullString(runID), q.Tier, q.Text, string(options), q.CorrectAnswer, q.Hint, q.DebugCode, string(poll), q.Topic, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		q.ID = int(id)
	}
	return nil
}

const questionColumns = "id, key, tier, text, options, correct_answer, hint, debug_code, poll, topic"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*Question, error) {
	var (
		q                 Question
		options           string
		hint, debug, poll sql.NullString
		topic             sql.NullString
	)
	if err := row.Scan(&q.ID, &q.Key, &q.Tier, &q.Text, &options, &q.CorrectAnswer, &hint, &debug, &poll, &topic); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options of %s: %w", q.Key, err)
	}
	if poll.Valid && poll.String != "" && poll.String != "null" {
		if err := json.Unmarshal([]byte(poll.String), &q.Poll); err != nil {
			return nil, fmt.Errorf("failed to unmarshal poll of %s: %w", q.Key, err)
		}
	}
	q.Hint = hint.String
	q.DebugCode = debug.String
	q.Topic = topic.String
	q.Status = StatusAccepted
	return &q, nil
}

// GetQuestion retrieves a question by key
func (db *DB) GetQuestion(key string) (*Question, error) {
	q, err := scanQuestion(db.db.QueryRow("SELECT "+questionColumns+" FROM questions WHERE key = ?", key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("question %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// ListQuestions returns the stored questions of tier, or all of them when
// tier is empty, in insertion order.
func (db *DB) ListQuestions(tier Tier) ([]Question, error) {
	query := "SELECT " + questionColumns + " FROM questions"
	var args []any
	if tier != "" {
		query += " WHERE tier = ?"
		args = append(args, tier)
	}
	query += " ORDER BY id"

	rows, err := db.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

// CountByTier returns how many questions each tier holds
func (db *DB) CountByTier() (map[Tier]int, error) {
	rows, err := db.db.Query("SELECT tier, COUNT(*) FROM questions GROUP BY tier")
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[Tier]int)
	for rows.Next() {
		var tier Tier
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[tier] = n
	}
	return counts, rows.Err()
}

func (db *DB) DeleteQuestion(key string) error {
	res, err := db.db.Exec("DELETE FROM questions WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %s: %w", key, ErrNotFound)
	}
	return nil
}

// ImportCatalog stores every question of c whose text is not stored yet and
// returns how many were added.
func (db *DB) ImportCatalog(c *Catalog) (int, error) {
	existing, err := db.ListQuestions("")
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[normalizeText(q.Text)] = true
	}

	added := 0
	for _, q := range c.Questions {
		if seen[normalizeText(q.Text)] {
			continue
		}
		q = q.clone()
		q.Key = ""
		if err := db.CreateQuestion(&q, ""); err != nil {
			return added, err
		}
		seen[normalizeText(q.Text)] = true
		added++
	}
	return added, nil
}

// LoadCatalog builds a playable catalog from the stored questions, using
// ladder or the reference ladder when ladder is empty.
func (db *DB) LoadCatalog(ladder Ladder) (*Catalog, error) {
	questions, err := db.ListQuestions("")
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog database: %w", ErrNotFound)
	}
	if len(ladder) == 0 {
		ladder = referenceLadder()
	}
	return &Catalog{Questions: questions, Ladder: ladder}, nil
}

// GenerateCatalog runs gen for req under run and stores every accepted
// question as it arrives. The run ends as completed or failed.
func (db *DB) GenerateCatalog(ctx context.Context, gen *Generator, run *GenerationRun, req GenerationRequest) (int, error) {
	questions, errs := gen.GenerateStream(ctx, req)

	stored := 0
	for q := range questions {
		if err := db.CreateQuestion(&q, run.ID); err != nil {
			log.Printf("Failed to store question %s: %v", q.Key, err)
			continue
		}
		stored++
		VerboseLog("Stored question %d/%d of run %s", stored, req.NumQuestions, run.ID)
	}

	status := RunCompleted
	err := <-errs
	if err != nil {
		status = RunFailed
		log.Printf("Generation run %s failed: %v", run.ID, err)
	}
	if uerr := db.UpdateRunStatus(run.ID, status); uerr != nil {
		log.Printf("Failed to update run status %s: %v", run.ID, uerr)
	}
	run.Status = status
	return stored, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
