package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/eternal/internal/app"
	"github.com/abhisek/eternal/internal/config"
	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/generation"
	"github.com/abhisek/eternal/internal/llm"
	"github.com/abhisek/eternal/internal/logging"
	"github.com/abhisek/eternal/internal/session"
	"github.com/abhisek/eternal/internal/store"
)

// deps holds everything a command needs to drive a session.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	client *generation.Client
}

func (d *deps) Close() {
	_ = d.logger.Sync()
	d.store.Close()
}

func (d *deps) newController() *session.Controller {
	return session.NewController(d.client, conversation.NewStore(), d.logger)
}

// bootstrap loads configuration, opens the event log and builds the
// provider stack. A provider without a credential fails here, before any
// screen is shown.
func bootstrap(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	logger.Info("starting",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.ModelID()),
		zap.String("db", dbPath),
	)

	return &deps{
		cfg:    cfg,
		logger: logger,
		store:  st,
		client: generation.NewClient(provider, cfg.Generation),
	}, nil
}

// settingsFromFlags overlays --person, --grade and --language on base.
func settingsFromFlags(cmd *cobra.Command, base domain.Settings) domain.Settings {
	if v, _ := cmd.Flags().GetString("person"); v != "" {
		base.TargetPerson = v
	}
	if v, _ := cmd.Flags().GetString("grade"); v != "" {
		base.StudentGrade = v
	}
	if v, _ := cmd.Flags().GetString("language"); v != "" {
		base.Language = v
	}
	return base
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	d, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	settings := settingsFromFlags(cmd, d.cfg.Session)
	autoStart, _ := cmd.Flags().GetBool("start")
	noIntro, _ := cmd.Flags().GetBool("no-intro")
	if autoStart {
		if err := settings.Validate(); err != nil {
			return err
		}
	}

	return app.Run(ctx, d.newController(), app.Options{
		Settings:  settings,
		SkipIntro: noIntro,
		AutoStart: autoStart,
	})
}
