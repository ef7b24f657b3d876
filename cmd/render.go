package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/spigell/microhire/internal/backend"
	"github.com/spigell/microhire/internal/session"
	"github.com/spigell/microhire/internal/skills"
)

const savedMark = "*"

func printJobs(w io.Writer, jobs *backend.Jobs, matches map[int64]skills.Result, saved session.JobIDSet) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCLIENT\tBUDGET\tMATCH\tSTATUS\tSAVED")
	for _, job := range jobs.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			job.ID,
			job.Title,
			job.ClientName,
			budget(job.Budget),
			matchCell(matches, job),
			job.Status,
			savedCell(saved, job.ID),
		)
	}
	return tw.Flush()
}

func printMatch(w io.Writer, result skills.Result) {
	fmt.Fprintf(w, "match: %d%% (%s)\n", result.Percentage, skills.Badge(result.Percentage))
	fmt.Fprintf(w, "matches: %s\n", listCell(result.Matches))
	fmt.Fprintf(w, "missing: %s\n", listCell(result.Missing))
}

func printProposals(w io.Writer, job *backend.Job, apps backend.Applications) {
	fmt.Fprintf(w, "%d %s [%s]\n", job.ID, job.Title, jobStatusCell(job))
	required := job.Skills()
	fmt.Fprintf(w, "required: %s\n", listCell(required))

	for _, app := range apps {
		result := app.MatchFor(required)
		name := app.FreelancerName
		if app.FreelancerTitle != "" {
			name += " (" + app.FreelancerTitle + ")"
		}

		fmt.Fprintf(w, "\n#%d %s: %s, %s\n", app.ID, name, proposalStatusCell(app), percentCell(result.Percentage))
		fmt.Fprintf(w, "  matches: %s\n", listCell(result.Matches))
		fmt.Fprintf(w, "  missing: %s\n", listCell(result.Missing))
	}
}

func jobStatusCell(job *backend.Job) string {
	status, err := job.Lifecycle()
	if err != nil {
		return job.Status + "?"
	}

	cell := string(status)
	switch {
	case status.Terminal():
		cell += ", finished"
	case status.Active():
		cell += ", in progress"
	}
	if next := status.Next(); len(next) > 0 {
		cell += ", next: " + joinStatuses(next)
	}
	return cell
}

// proposalStatusCell marks final proposals and lists where open ones can go.
func proposalStatusCell(app *backend.Application) string {
	status, err := app.Lifecycle()
	if err != nil {
		return app.Status + "?"
	}
	if status.Terminal() {
		return string(status) + " (final)"
	}
	return string(status) + " -> " + joinStatuses(status.Next())
}

func joinStatuses[S ~string](statuses []S) string {
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, "|")
}

func jobLabel(job *backend.Job, matches map[int64]skills.Result, saved session.JobIDSet) string {
	label := fmt.Sprintf("%d %s / %s / %s / %s", job.ID, job.Title, job.ClientName, budget(job.Budget), matchCell(matches, job))
	if saved.Has(job.ID) {
		label += " " + savedMark
	}
	return label
}

func budget(v float64) string {
	if v == 0 {
		return "-"
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}

// matchCell prefers the locally computed result and falls back to the backend score.
func matchCell(matches map[int64]skills.Result, job *backend.Job) string {
	if result, ok := matches[job.ID]; ok {
		return percentCell(result.Percentage)
	}
	if pct, ok := job.BackendMatch(); ok {
		return percentCell(pct)
	}
	return "-"
}

func percentCell(pct int) string {
	return strconv.Itoa(pct) + "% " + skills.Badge(pct)
}

func savedCell(saved session.JobIDSet, id int64) string {
	if saved.Has(id) {
		return savedMark
	}
	return ""
}

func listCell(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
