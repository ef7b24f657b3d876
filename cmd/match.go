package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/microhire/internal/skills"
)

var matchCmd = &cobra.Command{
	Use:   "match [JOB_ID]",
	Short: "Score skills against a job or an ad-hoc skill list",
	Long: `Without arguments the --candidate and --target lists are compared.
With a JOB_ID the logged-in freelancer's profile skills are compared to the job.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			candidate, _ := cmd.Flags().GetString("candidate")
			target, _ := cmd.Flags().GetString("target")
			printMatch(cmd.OutOrStdout(), skills.Match(skills.Text(candidate), skills.Text(target)))
			return nil
		}

		return withEnv(matchJob)(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("candidate", "c", "", "candidate skills, separated by , ; | or newline")
	matchCmd.Flags().StringP("target", "t", "", "required skills, separated by , ; | or newline")
}

func matchJob(cmd *cobra.Command, e *env, args []string) error {
	user, err := e.requireUser()
	if err != nil {
		return err
	}

	ids, err := parseJobIDs(args)
	if err != nil {
		return err
	}

	job, err := e.backend.Job(ids[0])
	if err != nil {
		return err
	}

	input := freelancerSkills(e, user)
	if len(skills.Parse(input)) == 0 {
		return errors.New("your profile lists no skills")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d %s\n", job.ID, job.Title)
	printMatch(out, job.MatchFor(input))
	return nil
}
