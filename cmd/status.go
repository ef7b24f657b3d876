package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/microhire/internal/lifecycle"
)

var statusCmd = &cobra.Command{
	Use:       "status job|application FROM TO",
	Short:     "Check whether a status change is allowed",
	Args:      cobra.ExactArgs(3),
	ValidArgs: []string{"job", "application"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		switch args[0] {
		case "job":
			err = checkJobTransition(args[1], args[2])
		case "application":
			err = checkApplicationTransition(args[1], args[2])
		default:
			return fmt.Errorf("unknown entity %q, want job or application", args[0])
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "allowed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func checkJobTransition(rawFrom, rawTo string) error {
	from, err := lifecycle.ParseJobStatus(rawFrom)
	if err != nil {
		return err
	}
	to, err := lifecycle.ParseJobStatus(rawTo)
	if err != nil {
		return err
	}
	return lifecycle.TransitionJob(from, to)
}

func checkApplicationTransition(rawFrom, rawTo string) error {
	from, err := lifecycle.ParseApplicationStatus(rawFrom)
	if err != nil {
		return err
	}
	to, err := lifecycle.ParseApplicationStatus(rawTo)
	if err != nil {
		return err
	}
	return lifecycle.TransitionApplication(from, to)
}
