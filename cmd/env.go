package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/backend"
	"github.com/spigell/microhire/internal/logger"
	"github.com/spigell/microhire/internal/session"
)

// env is everything a command needs, built once per invocation.
type env struct {
	ctx     context.Context
	config  *Config
	logger  *zap.Logger
	kv      *session.SQLiteKV
	store   *session.Store
	saved   *session.SavedJobs
	backend *backend.Client
}

func newEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(config.StateFile), 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	kv, err := session.OpenSQLite(ctx, config.StateFile)
	if err != nil {
		return nil, fmt.Errorf("opening state file %q: %w", config.StateFile, err)
	}

	store := session.New(kv, base)
	user := store.StoredUser(ctx)
	log := logger.WithCommonFields(base, cmd.Name(), user.UserID)
	log.Debug("starting", zap.String("version", version), zap.String("state_file", config.StateFile))

	client := backend.New(ctx, log)
	if config.APIURL != "" {
		client.APIURL = config.APIURL
	}
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return &env{
		ctx:     ctx,
		config:  config,
		logger:  log,
		kv:      kv,
		store:   store,
		saved:   session.NewSavedJobs(kv, log),
		backend: client,
	}, nil
}

func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.logger.Warn("closing state file", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// requireUser returns the logged-in user or an error telling how to log in.
func (e *env) requireUser() (session.User, error) {
	user := e.store.StoredUser(e.ctx)
	if !user.Authenticated() {
		return user, fmt.Errorf("not logged in, run `%s login` first", app)
	}
	return user, nil
}

// withEnv adapts a command body that needs an env into a cobra RunE.
func withEnv(fn func(cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		return fn(cmd, e, args)
	}
}
