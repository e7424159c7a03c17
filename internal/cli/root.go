// Package cli is the terminal front end of the dashboard.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adanyl0v/agua-vida/internal/client"
	"github.com/adanyl0v/agua-vida/internal/dashboard"
)

const sessionEnv = "AGUA_VIDA_SESSION"

var ErrNoSession = errors.New("no session: pass --session or set " + sessionEnv)

type options struct {
	apiURL  string
	session string
	demo    bool
	verbose bool

	logger zerolog.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent
// tree.
func NewRootCmd() *cobra.Command {
	o := &options{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "agua-vida",
		Short: "Água Vida task lists from the terminal",
		Long: `Água Vida keeps task lists with per-task timers, rest breaks and
completion statistics.

Commands talk to the API with the session cookie issued after Google
sign-in, or run on the built-in sample data with --demo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.session == "" {
				o.session = os.Getenv(sessionEnv)
			}

			level := zerolog.WarnLevel
			if o.verbose {
				level = zerolog.DebugLevel
			}
			o.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).
				With().
				Timestamp().
				Logger()
			return nil
		},
	}

	// Global flags
	root.PersistentFlags().StringVar(&o.apiURL, "api-url", client.DefaultBaseURL, "Base URL of the API")
	root.PersistentFlags().StringVar(&o.session, "session", "", "Session token (defaults to $"+sessionEnv+")")
	root.PersistentFlags().BoolVar(&o.demo, "demo", false, "Use the built-in sample data instead of the API")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(newWhoamiCmd(o))
	root.AddCommand(newListsCmd(o))
	root.AddCommand(newStatsCmd(o))
	root.AddCommand(newToggleCmd(o))
	root.AddCommand(newCreateListCmd(o))
	root.AddCommand(newCreateStackCmd(o))
	root.AddCommand(newAddTaskCmd(o))
	root.AddCommand(newSetModeCmd(o))
	root.AddCommand(newTrackCmd(o))

	return root
}

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	root := NewRootCmd()
	root.Version = version
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (o *options) client() (*client.Client, error) {
	if o.session == "" {
		return nil, ErrNoSession
	}
	return client.New(o.apiURL, o.session, client.WithLogger(o.logger))
}

// open builds a coordinator for the selected mode and loads the lists.
// The caller must Close it.
func (o *options) open(ctx context.Context, onEvent func(dashboard.Event)) (*dashboard.Coordinator, error) {
	cfg := dashboard.Config{
		Mode:    dashboard.ModeDemo,
		OnEvent: onEvent,
	}
	if !o.demo {
		c, err := o.client()
		if err != nil {
			return nil, err
		}
		cfg.Mode = dashboard.ModeLive
		cfg.Source = c
	}

	d, err := dashboard.New(o.logger, cfg)
	if err != nil {
		return nil, err
	}
	if err := d.Load(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to load task lists: %w", err)
	}
	return d, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
