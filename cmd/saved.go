package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/filtering"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved jobs",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		if _, err := e.requireUser(); err != nil {
			return err
		}

		steps := filtering.Default()
		filtering.DisableByName(steps, "open_only", "saved jobs are listed in any status")
		filtering.DisableByName(steps, "applied", "saved jobs are listed even when applied")
		filtering.EnableByName(steps, "saved_only")

		// min_match only scores here.
		e.config.Jobs.MinMatch = 0

		return browse(cmd, e, steps, false)
	}),
}

var saveCmd = &cobra.Command{
	Use:   "save JOB_ID...",
	Short: "Save jobs for later",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withEnv(changeSaved(true)),
}

var unsaveCmd = &cobra.Command{
	Use:   "unsave JOB_ID...",
	Short: "Remove jobs from the saved list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withEnv(changeSaved(false)),
}

func init() {
	rootCmd.AddCommand(savedCmd, saveCmd, unsaveCmd)
}

func changeSaved(save bool) func(*cobra.Command, *env, []string) error {
	return func(cmd *cobra.Command, e *env, args []string) error {
		user, err := e.requireUser()
		if err != nil {
			return err
		}

		ids, err := parseJobIDs(args)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if save {
				err = e.saved.Add(e.ctx, user.ID(), id)
			} else {
				err = e.saved.Remove(e.ctx, user.ID(), id)
			}
			if err != nil {
				return err
			}
			e.logger.Debug("saved jobs updated", zap.Int64("job_id", id), zap.Bool("saved", save))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d saved\n", e.saved.Get(e.ctx, user.ID()).Len())
		return nil
	}
}

func parseJobIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid job id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
