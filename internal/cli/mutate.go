package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/agua-vida/internal/dashboard"
	"github.com/adanyl0v/agua-vida/internal/models"
)

func newToggleCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle LIST TASK",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, taskID := args[0], args[1]

			d, err := o.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer d.Close()

			outcome, err := d.ToggleTask(cmd.Context(), listID, taskID)
			if err != nil {
				if outcome == dashboard.OutcomeRolledBack || outcome == dashboard.OutcomeCompensated {
					return fmt.Errorf("toggle %s: %w", outcome, err)
				}
				return err
			}

			l, _ := d.List(listID)
			t, _ := l.Task(taskID)
			state := "not done"
			if t.Completed {
				state = "done"
			}
			printf(cmd.OutOrStdout(), "%s: %s\n", t.Text, state)
			if l.Status() == models.StatusCompleted && d.Celebrating(listID) {
				printf(cmd.OutOrStdout(), "All tasks in %q are done!\n", l.Title)
			}
			return nil
		},
	}
}

func newCreateListCmd(o *options) *cobra.Command {
	var data models.NewTaskList

	cmd := &cobra.Command{
		Use:   "create-list TITLE",
		Short: "Create an empty task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data.Title = args[0]

			d, err := o.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer d.Close()

			l, err := d.CreateTaskList(cmd.Context(), data)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Created list %s (%s)\n", l.Title, l.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&data.Stack, "stack", "", "Stack to put the list in")
	cmd.Flags().StringVar(&data.ImageURL, "image", "", "Cover image URL")
	cmd.Flags().BoolVar(&data.HasTimer, "timer", false, "Enable task timers")
	cmd.Flags().BoolVar(&data.IsFinancial, "financial", false, "Track a value per task")
	return cmd
}

func newCreateStackCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create-stack STACK TITLE",
		Short: "Start a stack with its first list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer d.Close()

			l, err := d.CreateStack(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Created list %s (%s) in stack %s\n", l.Title, l.ID, l.Stack)
			return nil
		},
	}
}

func newAddTaskCmd(o *options) *cobra.Command {
	var value float64

	cmd := &cobra.Command{
		Use:   "add-task LIST TEXT",
		Short: "Add a task to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := models.NewTask{Text: args[1]}
			if cmd.Flags().Changed("value") {
				data.Value = &value
			}

			d, err := o.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer d.Close()

			l, err := d.CreateTask(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			t := l.Tasks[len(l.Tasks)-1]
			printf(cmd.OutOrStdout(), "Added %s (%s) to %s\n", t.Text, t.ID, l.Title)
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Value of the task, kept only on financial lists")
	return cmd
}

func newSetModeCmd(o *options) *cobra.Command {
	var (
		mode     string
		interval int
	)

	cmd := &cobra.Command{
		Use:   "set-mode LIST",
		Short: "Change a list's timer mode or rest interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update models.TaskListUpdate
			if cmd.Flags().Changed("mode") {
				m := models.TimerMode(mode)
				if !m.Valid() {
					return fmt.Errorf("unknown timer mode %q", mode)
				}
				update.TimerMode = &m
			}
			if cmd.Flags().Changed("rest-interval") {
				if interval <= 0 {
					return fmt.Errorf("rest interval must be positive, got %d", interval)
				}
				update.RestInterval = &interval
			}
			if update.TimerMode == nil && update.RestInterval == nil {
				return fmt.Errorf("nothing to change: pass --mode or --rest-interval")
			}

			d, err := o.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.UpdateTaskList(cmd.Context(), args[0], update); err != nil {
				return err
			}
			l, _ := d.List(args[0])
			printf(cmd.OutOrStdout(), "%s: timer mode %s, rest %dm\n", l.Title, l.TimerMode, l.RestInterval)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Timer mode: none, pomodoro or rest")
	cmd.Flags().IntVar(&interval, "rest-interval", 0, "Rest break length in minutes")
	return cmd
}
