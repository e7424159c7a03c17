package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/agua-vida/internal/dashboard"
	"github.com/adanyl0v/agua-vida/internal/fixtures"
	"github.com/adanyl0v/agua-vida/internal/models"
)

var ErrNotSignedIn = errors.New("not signed in")

func newWhoamiCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if o.demo {
				printUser(out, fixtures.DemoUser())
				return nil
			}

			c, err := o.client()
			if err != nil {
				return err
			}
			user, err := c.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				return ErrNotSignedIn
			}
			printUser(out, *user)
			return nil
		},
	}
}

func printUser(w io.Writer, u models.User) {
	printf(w, "%s <%s>\n", u.Name, u.Email)
	printf(w, "  id: %s\n", u.ID)
}

func newListsCmd(o *options) *cobra.Command {
	var (
		query     string
		status    string
		financial bool
	)

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List task lists with their tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statusFilter, err := dashboard.ParseStatusFilter(status)
			if err != nil {
				return err
			}

			d, err := o.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer d.Close()

			lists := d.Filtered(dashboard.Filter{
				Query:         query,
				Status:        statusFilter,
				FinancialOnly: financial,
			})
			out := cmd.OutOrStdout()
			if len(lists) == 0 {
				printf(out, "No task lists found.\n")
				return nil
			}
			for _, l := range lists {
				printList(out, l)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only lists whose title contains this text")
	cmd.Flags().StringVar(&status, "status", "all", "Filter by status: all, in-progress or completed")
	cmd.Flags().BoolVar(&financial, "financial", false, "Only financial lists")
	return cmd
}

func printList(w io.Writer, l models.TaskList) {
	var done int
	for _, t := range l.Tasks {
		if t.Completed {
			done++
		}
	}

	stack := l.Stack
	if stack == "" {
		stack = dashboard.UncategorizedStack
	}
	printf(w, "%-8s %-28s %-14s %d/%d  %s\n", l.ID, l.Title, stack, done, len(l.Tasks), l.Status())
	if l.HasTimer {
		printf(w, "         timer: %s, rest %dm, spent %s\n", l.TimerMode, l.RestInterval, seconds(l.TimeSpent()))
	}

	var total float64
	for _, t := range l.DisplayTasks() {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %-8s %s", mark, t.ID, t.Text)
		if t.TimeSpent > 0 {
			line += "  (" + seconds(t.TimeSpent) + ")"
		}
		if t.Value != nil {
			line += fmt.Sprintf("  $%.2f", *t.Value)
			total += *t.Value
		}
		printf(w, "%s\n", line)
	}
	if l.IsFinancial {
		printf(w, "  total: $%.2f\n", total)
	}
	printf(w, "\n")
}

func seconds(s int64) string {
	return (time.Duration(s) * time.Second).String()
}

func newStatsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics for lists and stacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer d.Close()

			lists, stacks := d.Stats()
			out := cmd.OutOrStdout()
			printSummary(out, "Lists", lists)
			printSummary(out, "Stacks", stacks)
			return nil
		},
	}
}

func printSummary(w io.Writer, title string, s dashboard.Summary) {
	printf(w, "%s (%d)\n", title, s.Total())
	printf(w, "  completed:       %d\n", s.Completed)
	printf(w, "  in progress:     %d\n", s.InProgress)
	printf(w, "  open:            %d\n", s.Open)
	printf(w, "  avg. completion: %s\n", s.AverageLabel())
	for _, slice := range s.Breakdown() {
		printf(w, "  %-12s %5.1f%%\n", slice.Label, slice.Share*100)
	}
	printf(w, "\n")
}
