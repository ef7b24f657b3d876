package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/microhire/internal/backend"
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals JOB_ID",
	Short: "Show proposals submitted for a job, scored against its required skills",
	Args:  cobra.ExactArgs(1),
	RunE:  withEnv(listProposals),
}

func init() {
	rootCmd.AddCommand(proposalsCmd)
}

func listProposals(cmd *cobra.Command, e *env, args []string) error {
	if _, err := e.requireUser(); err != nil {
		return err
	}

	ids, err := parseJobIDs(args)
	if err != nil {
		return err
	}

	var (
		job  *backend.Job
		apps *backend.Applications
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		if job, err = e.backend.Job(ids[0]); err != nil {
			return fmt.Errorf("getting job: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if apps, err = e.backend.JobApplications(ids[0]); err != nil {
			return fmt.Errorf("getting proposals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	e.logger.Debug("getting proposals", zap.Int64("job", job.ID), zap.Int("count", len(*apps)))

	out := cmd.OutOrStdout()
	if len(*apps) == 0 {
		fmt.Fprintf(out, "%d %s [%s]\nno proposals yet\n", job.ID, job.Title, jobStatusCell(job))
		return nil
	}

	printProposals(out, job, *apps)
	return nil
}
