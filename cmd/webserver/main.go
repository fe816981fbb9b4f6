package main

import (
	"context"
	"crypto/rand"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"quizshow"

	"github.com/gorilla/sessions"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
)

const (
	releaseVersion = "0.4.0"

	cookieName = "quizshow-session"
	timeout    = 10 * time.Second
)

func init() {
	gob.Register(quizshow.Profile{})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}

type Server struct {
	cfg      *Config
	catalog  *quizshow.Catalog
	store    *sessions.CookieStore
	sessions *registry
	resolver quizshow.ProfileResolver
	game     quizshow.GameConfig
}

func newServer(cfg *Config, catalog *quizshow.Catalog, resolver quizshow.ProfileResolver, clock quizshow.Clock) *Server {
	secret := []byte(cfg.sessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		log.Printf("No session secret configured; sessions will not survive a restart")
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     cfg.prefix + "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		cfg:      cfg,
		catalog:  catalog,
		store:    store,
		sessions: newRegistry(cfg.sessionTimeout),
		resolver: resolver,
		game: quizshow.GameConfig{
			Clock:         clock,
			RevealDelay:   cfg.revealDelay,
			ResolveDelay:  cfg.resolveDelay,
			WalkAwayDelay: cfg.walkAwayDelay,
		},
	}
}

// loadCatalog picks the catalog file, then the database, then the built-in set
func loadCatalog(cfg *Config) (*quizshow.Catalog, error) {
	if cfg.catalogFile != "" {
		return quizshow.LoadCatalogFile(cfg.catalogFile)
	}
	if cfg.dbPath == "" {
		return quizshow.DefaultCatalog(), nil
	}

	db, err := quizshow.OpenDB(cfg.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.CloseDB()

	if err := db.CreateTables(); err != nil {
		return nil, err
	}
	catalog, err := db.LoadCatalog(nil)
	if errors.Is(err, quizshow.ErrNotFound) {
		log.Printf("Database %s has no questions, using the built-in catalog", cfg.dbPath)
		return quizshow.DefaultCatalog(), nil
	}
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d questions from %s", len(catalog.Questions), cfg.dbPath)
	return catalog, nil
}

func serve(ctx context.Context, cfg *Config) error {
	quizshow.SetVerbose(cfg.verbose)
	cfg.prefix = strings.TrimSuffix(cfg.prefix, "/")

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s := newServer(cfg, catalog, quizshow.NewGitHubResolver(cfg.githubAPI), quizshow.RealClock())
	if err := s.sessions.startReaper(cfg.reapSchedule); err != nil {
		return err
	}
	defer s.sessions.stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           s.routes(),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s%s/", srv.Addr, cfg.prefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() http.Handler {
	mux := httprouter.New()
	prefix := s.cfg.prefix

	handle := func(method, path string, h httprouter.Handle) {
		mux.Handle(method, prefix+path, instrument(path, h))
	}

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Printf("Panic serving %s: %v", r.URL.Path, i)
		writeError(w, http.StatusInternalServerError, "internal error")
	}

	handle(http.MethodGet, "/healthz", s.handleHealth)
	handle(http.MethodGet, "/version", s.handleVersion)
	handle(http.MethodGet, "/api/ladder", s.handleLadder)

	handle(http.MethodGet, "/api/game", s.handleState)
	handle(http.MethodPost, "/api/game", s.handleStart)
	handle(http.MethodPost, "/api/game/answer", s.handleAnswer)
	handle(http.MethodPost, "/api/game/lifeline/:kind", s.handleLifeline)
	handle(http.MethodPost, "/api/game/walkaway", s.handleWalkAway)
	handle(http.MethodGet, "/api/game/summary", s.handleSummary)
	handle(http.MethodGet, "/api/game/share.png", s.handleShareQR)
	handle(http.MethodGet, "/summary", s.handleSummaryPage)

	handle(http.MethodGet, "/api/profile", s.handleGetProfile)
	handle(http.MethodPost, "/api/profile", s.handleSetProfile)
	handle(http.MethodDelete, "/api/profile", s.handleClearProfile)

	handle(http.MethodGet, "/ws", s.serveWS)

	if s.cfg.metrics {
		mux.GET(prefix+"/metrics", metricsHandler())
	}

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Ok\n")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "quizshow webserver v"+releaseVersion+"\n")
}
