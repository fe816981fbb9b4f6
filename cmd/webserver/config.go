package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	port           int
	prefix         string
	dbPath         string
	catalogFile    string
	sessionSecret  string
	sessionTimeout time.Duration
	reapSchedule   string
	githubAPI      string
	shareRepo      string
	revealDelay    time.Duration
	resolveDelay   time.Duration
	walkAwayDelay  time.Duration
	metrics        bool
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.sessionTimeout <= 0 {
		return errors.New("--session-timeout must be positive")
	}
	if _, err := cron.ParseStandard(c.reapSchedule); err != nil {
		return fmt.Errorf("invalid --reap-schedule %q: %w", c.reapSchedule, err)
	}
	if c.revealDelay < 0 || c.resolveDelay < 0 || c.walkAwayDelay < 0 {
		return errors.New("delays must not be negative")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QUIZSHOW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "webserver",
		Short:         "Serves the quiz show game over HTTP and websockets.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: QUIZSHOW_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8180, "port to listen on (env: QUIZSHOW_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: QUIZSHOW_PREFIX)")
	fs.StringVar(&cfg.dbPath, "db", "", "sqlite catalog database; used when it holds questions (env: QUIZSHOW_DB)")
	fs.StringVar(&cfg.catalogFile, "catalog", "", "YAML catalog file, overrides --db (env: QUIZSHOW_CATALOG)")
	fs.StringVar(&cfg.sessionSecret, "session-secret", "", "cookie signing key; random when empty (env: QUIZSHOW_SESSION_SECRET)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 30*time.Minute, "time before idle play sessions are removed (env: QUIZSHOW_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.reapSchedule, "reap-schedule", "@every 1m", "cron schedule of the idle session sweep (env: QUIZSHOW_REAP_SCHEDULE)")
	fs.StringVar(&cfg.githubAPI, "github-api", "https://api.github.com", "GitHub API base URL for profile lookups (env: QUIZSHOW_GITHUB_API)")
	fs.StringVar(&cfg.shareRepo, "share-repo", "", "repository whose issue form collects shared scores (env: QUIZSHOW_SHARE_REPO)")
	fs.DurationVar(&cfg.revealDelay, "reveal-delay", 3*time.Second, "pause between answer and reveal (env: QUIZSHOW_REVEAL_DELAY)")
	fs.DurationVar(&cfg.resolveDelay, "resolve-delay", 2*time.Second, "pause between reveal and the next question (env: QUIZSHOW_RESOLVE_DELAY)")
	fs.DurationVar(&cfg.walkAwayDelay, "walk-away-delay", time.Second, "pause before a walk-away ends the game (env: QUIZSHOW_WALK_AWAY_DELAY)")
	fs.BoolVar(&cfg.metrics, "metrics", true, "expose prometheus metrics on /metrics (env: QUIZSHOW_METRICS)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: QUIZSHOW_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: QUIZSHOW_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quizshow webserver v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
