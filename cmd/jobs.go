package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/microhire/internal/backend"
	"github.com/spigell/microhire/internal/filtering"
	"github.com/spigell/microhire/internal/session"
	"github.com/spigell/microhire/internal/skills"
	"github.com/spigell/microhire/internal/utils"
)

const (
	PromptBack            = "back"
	PromptReportByClients = "Report by clients"
	PromptJobsToFile      = "Dump jobs to file"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List open jobs scored against your skills",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		steps := filtering.Default()
		if anyStatus, _ := cmd.Flags().GetBool("any-status"); anyStatus {
			filtering.DisableByName(steps, "open_only", "any-status flag is set")
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		return browse(cmd, e, steps, interactive)
	}),
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().IntP("min-match", "m", 0, "hide jobs matching less than this percentage")
	jobsCmd.Flags().BoolP("include-applied", "f", false, "do not exclude jobs already applied to")
	jobsCmd.Flags().StringP("search", "s", "", "keep jobs whose title, description or skills contain this text")
	jobsCmd.Flags().Bool("any-status", false, "show jobs in every status, not only open ones")
	jobsCmd.Flags().BoolP("interactive", "i", false, "pick jobs to save or unsave")

	viper.BindPFlag("jobs.min-match", jobsCmd.Flags().Lookup("min-match"))
	viper.BindPFlag("jobs.include-applied", jobsCmd.Flags().Lookup("include-applied"))
	viper.BindPFlag("jobs.search", jobsCmd.Flags().Lookup("search"))
}

// browse loads the job board, runs the filters and prints or walks the result.
func browse(cmd *cobra.Command, e *env, steps []filtering.Filter, interactive bool) error {
	user := e.store.StoredUser(e.ctx)

	var (
		jobs  *backend.Jobs
		input skills.Input
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		if jobs, err = e.backend.Jobs(user.UserID); err != nil {
			return fmt.Errorf("getting jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		input = freelancerSkills(e, user)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	e.logger.Info("getting jobs", zap.Int("count", jobs.Len()))

	deps := filtering.Deps{
		Applications: e.backend,
		Saved:        e.saved,
		Logger:       e.logger,
		User:         user,
		Skills:       input,
	}

	cfg := &filtering.Config{
		MinMatch:       e.config.Jobs.MinMatch,
		IncludeApplied: e.config.Jobs.IncludeApplied,
		Search:         e.config.Jobs.Search,
	}

	jobs, matches, err := filtering.Run(e.ctx, cfg, deps, steps, jobs)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		e.logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	var saved session.JobIDSet
	if user.Authenticated() {
		saved = e.saved.Get(e.ctx, user.ID())
	} else {
		// No profile to score against.
		matches = nil
	}

	if !interactive {
		if err := printJobs(cmd.OutOrStdout(), jobs, matches, saved); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d %s\n", jobs.Len(), utils.Plural(jobs.Len(), "job", "jobs"))
		return nil
	}

	if !user.Authenticated() {
		return errors.New("interactive mode needs a logged-in user to save jobs")
	}
	if !isTerminal() {
		return errNotInteractive
	}

	return pickJobs(e, user, jobs, matches)
}

// freelancerSkills fetches the profile skills of the logged-in freelancer.
// Anonymous users and profile errors yield no skills.
func freelancerSkills(e *env, user session.User) skills.Input {
	if !user.Authenticated() {
		return skills.Unknown()
	}

	freelancer, err := e.backend.Freelancer(user.ID())
	if err != nil {
		e.logger.Warn("getting freelancer profile, match scores will be empty", zap.Error(err))
		return skills.Unknown()
	}
	return freelancer.SkillsInput()
}

func pickJobs(e *env, user session.User, jobs *backend.Jobs, matches map[int64]skills.Result) error {
	for {
		saved := e.saved.Get(e.ctx, user.ID())

		items := make([]string, 0, jobs.Len()+3)
		for _, job := range jobs.Items {
			items = append(items, jobLabel(job, matches, saved))
		}
		items = append(items, PromptReportByClients, PromptJobsToFile, PromptBack)

		jobPrompt := promptui.Select{
			Label: fmt.Sprintf("Choose a job to save or unsave (%s marks saved)", savedMark),
			Items: items,
			Size:  15,
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptReportByClients:
			pretty, err := json.MarshalIndent(jobs.ReportByClient(), "", "  ")
			if err != nil {
				e.logger.Warn("building report by clients", zap.Error(err))
				continue
			}
			e.logger.Info(string(pretty), zap.Int("jobs count", jobs.Len()))
		case PromptJobsToFile:
			filename, err := jobs.DumpToTmpFile()
			if err != nil {
				return fmt.Errorf("dump results to file: %w", err)
			}
			e.logger.Info("dumping result to file", zap.String("filename", filename))
		default:
			jobID, err := strconv.ParseInt(strings.Split(selected, " ")[0], 10, 64)
			if err != nil || jobs.FindByID(jobID) == nil {
				return fmt.Errorf("there is no such job %q", selected)
			}

			isSaved, err := e.saved.Toggle(e.ctx, user.ID(), jobID)
			if err != nil {
				return err
			}
			e.logger.Info("toggled saved job", zap.Int64("job_id", jobID), zap.Bool("saved", isSaved))
		}
	}
}
