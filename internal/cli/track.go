package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/agua-vida/internal/dashboard"
)

func newTrackCmd(o *options) *cobra.Command {
	var (
		duration time.Duration
		complete bool
	)

	cmd := &cobra.Command{
		Use:   "track LIST TASK",
		Short: "Run a task's timer for a while",
		Long: `Starts the task's timer and stops it after --for or on Ctrl-C.
With --complete the task is marked done when the timer stops, which
starts a rest break on lists in rest mode.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, taskID := args[0], args[1]
			out := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var mu sync.Mutex
			onEvent := func(ev dashboard.Event) {
				mu.Lock()
				defer mu.Unlock()

				switch ev.Kind {
				case dashboard.EventRestStarted:
					printf(out, "Rest break: %s\n", seconds(int64(ev.SecondsLeft)))
				case dashboard.EventRestFinished:
					printf(out, "Rest break over\n")
				case dashboard.EventCelebrationStarted:
					printf(out, "All tasks done!\n")
				}
			}

			d, err := o.open(ctx, onEvent)
			if err != nil {
				return err
			}
			defer d.Close()

			running, err := d.ToggleTimer(listID, taskID)
			if err != nil {
				return err
			}
			if !running {
				return fmt.Errorf("timer of %s did not start", taskID)
			}
			printf(out, "Tracking %s/%s for %s\n", listID, taskID, duration)

			timer := time.NewTimer(duration)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
			}

			if _, err := d.ToggleTimer(listID, taskID); err != nil {
				return err
			}
			if complete {
				if _, err := d.ToggleTask(cmd.Context(), listID, taskID); err != nil {
					return err
				}
			}

			l, _ := d.List(listID)
			t, _ := l.Task(taskID)
			mu.Lock()
			printf(out, "%s: %s spent\n", t.Text, seconds(t.TimeSpent))
			if listID, left, ok := d.Rest(); ok {
				printf(out, "Rest break for %s: %s left\n", listID, seconds(int64(left)))
			}
			mu.Unlock()
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "for", 25*time.Minute, "How long to run the timer")
	cmd.Flags().BoolVar(&complete, "complete", false, "Mark the task done when the timer stops")
	return cmd
}
