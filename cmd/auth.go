package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/secrets"
	"github.com/spigell/microhire/internal/session"
)

const passwordEnv = envPrefix + "_PASSWORD"

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the user on this machine",
	Args:  cobra.NoArgs,
	RunE:  withEnv(login),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the logged-in user",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		if err := e.store.ClearUser(e.ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		user := e.store.StoredUser(e.ctx)
		out := cmd.OutOrStdout()
		if e.store.State(e.ctx) == session.Anonymous {
			fmt.Fprintln(out, session.Anonymous)
			return nil
		}

		fmt.Fprintf(out, "%s: %s <%s> id=%d role=%s", session.Authenticated, user.FullName, user.Email, user.ID(), user.Role)
		if user.ProfileCompleteness != nil {
			fmt.Fprintf(out, " profile=%d%%", *user.ProfileCompleteness)
		}
		fmt.Fprintln(out)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringP("email", "e", "", "account email")
	loginCmd.Flags().String("password-file", "", "file holding the account password")

	viper.BindPFlag("email", loginCmd.Flags().Lookup("email"))
	viper.BindPFlag("password-file", loginCmd.Flags().Lookup("password-file"))
}

func login(cmd *cobra.Command, e *env, _ []string) error {
	email := strings.TrimSpace(e.config.Email)
	if email == "" {
		var err error
		if email, err = askEmail(); err != nil {
			return fmt.Errorf("email is not configured: %w", err)
		}
	}

	password, err := resolvePassword(e.config)
	if err != nil {
		e.logger.Debug("no configured password, asking", zap.Error(err))
		if password, err = askPassword(cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("password is not configured (set password-file or $%s): %w", passwordEnv, err)
		}
	}

	resp, err := e.backend.Login(email, password)
	if err != nil {
		return err
	}

	user := resp.User()
	if err := e.store.SaveUser(e.ctx, user); err != nil {
		if errors.Is(err, session.ErrMissingUserID) {
			return fmt.Errorf("backend returned no user id: %w", err)
		}
		return err
	}

	e.logger.Info("logged in", zap.Int64("user_id", user.ID()), zap.String("role", user.Role))
	fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.FullName)
	return nil
}

func resolvePassword(config *Config) (string, error) {
	return secrets.Load(secrets.Source{
		Name:  "password",
		Value: config.Password,
		File:  config.PasswordFile,
		Env:   passwordEnv,
	})
}
