package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jonathan/career-guide/internal/auth"
	"github.com/jonathan/career-guide/internal/config"
	"github.com/jonathan/career-guide/internal/counsel"
	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/i18n"
	"github.com/jonathan/career-guide/internal/llm"
	"github.com/jonathan/career-guide/internal/prefs"
	"github.com/jonathan/career-guide/internal/profile"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/spf13/cobra"
)

// llmFactory creates the generative client for cfg.
type llmFactory func(ctx context.Context, cfg *config.Config) (llm.Client, error)

func defaultLLMFactory(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	return llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
}

// rootOptions holds the global flags.
type rootOptions struct {
	configPath string
	storeURL   string
	verbose    bool
	newLLM     llmFactory
}

// application is the state shared by one command invocation.
type application struct {
	cfg      *config.Config
	store    db.Store
	prefs    *prefs.Context
	users    *auth.Store
	profiles *profile.Repository
	newLLM   llmFactory
}

// errNotSignedIn is returned by commands that need a signed-in user.
var errNotSignedIn = errors.New("not signed in: run 'career_agent signin' first")

func newRootCmd(newLLM llmFactory) *cobra.Command {
	opts := &rootOptions{newLLM: newLLM}

	root := &cobra.Command{
		Use:           "career_agent",
		Short:         "Career guidance, profiles and resumes",
		Long:          "career_agent keeps a user profile, exports it as a themed resume PDF and talks to a Gemini-backed career counselor.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	root.PersistentFlags().StringVar(&opts.storeURL, "store", "", "Store URL (sqlite://, postgres://, redis://, memory://)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	root.AddCommand(
		newSignupCmd(opts),
		newSigninCmd(opts),
		newSignoutCmd(opts),
		newWhoamiCmd(opts),
		newProfileCmd(opts),
		newResumeCmd(opts),
		newRecommendCmd(opts),
		newChatCmd(opts),
		newThemeCmd(opts),
		newLanguageCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// open loads the configuration and opens the store.
func (o *rootOptions) open(ctx context.Context) (*application, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.storeURL != "" {
		cfg.StoreURL = o.storeURL
	}
	cfg.Verbose = cfg.Verbose || o.verbose
	if cfg.Verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	store, err := db.Open(ctx, cfg.StoreURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	p := prefs.New(ctx, store)
	prefs.SetDefault(p)

	return &application{
		cfg:      cfg,
		store:    store,
		prefs:    p,
		users:    auth.NewStore(store),
		profiles: profile.NewRepository(store),
		newLLM:   o.newLLM,
	}, nil
}

// Close closes the store.
func (a *application) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
}

// session returns the signed-in user or errNotSignedIn.
func (a *application) session(ctx context.Context) (*types.Session, error) {
	s, err := a.users.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNotSignedIn
	}
	return s, nil
}

// label translates key in the active language, falling back to English for
// keys the language's table lacks.
func (a *application) label(key string) string {
	if s := a.prefs.T(key); s != key {
		return s
	}
	if t, err := i18n.LoadTable(i18n.DefaultLanguage); err == nil {
		return t.Lookup(key)
	}
	return key
}

// counselor creates the counselor. Without an API key every call fails with
// the counselor's generic error.
func (a *application) counselor(ctx context.Context) (*counsel.Client, func(), error) {
	if a.cfg.APIKey == "" {
		log.Printf("[COUNSEL] GEMINI_API_KEY is not set")
		return counsel.NewClient(nil), func() {}, nil
	}
	client, err := a.newLLM(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	return counsel.NewClient(client), closeFn, nil
}

// withApp opens the application for the duration of run.
func withApp(o *rootOptions, run func(cmd *cobra.Command, app *application, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := o.open(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()
		return run(cmd, app, args)
	}
}
