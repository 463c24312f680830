package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/byte4ever/ghub"
	"github.com/byte4ever/ghub/config"
	"github.com/byte4ever/ghub/transport"
)

// rootFlags holds the persistent flags shared by every
// subcommand.
type rootFlags struct {
	configFile string
	baseURL    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "ghub",
		Short: "Manage GitHub pull requests, branches and references",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), flags.debug)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(
		&flags.configFile, "config", "c", "",
		"YAML file with token and enterprise_host",
	)
	cmd.PersistentFlags().StringVar(
		&flags.baseURL, "base-url", "",
		"API root, overrides the enterprise host",
	)
	cmd.PersistentFlags().BoolVar(
		&flags.debug, "debug", false,
		"Log every request at debug level",
	)

	cmd.AddCommand(
		newPullRequestCmd(flags),
		newBranchCmd(flags),
		newReferenceCmd(flags),
	)

	return cmd
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		w, &slog.HandlerOptions{Level: level},
	)))
}

// newClient builds a ghub.Client from the config file,
// .env and GITHUB_* variables.
func (f *rootFlags) newClient() (*ghub.Client, error) {
	const errCtx = "building client"

	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	opts := cfg.TransportOptions()
	if f.baseURL != "" {
		opts = append(opts, transport.WithBaseURL(f.baseURL))
	}

	cl, err := ghub.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cl, nil
}

func printJSON(w io.Writer, val interface{}) error {
	out, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return fmt.Errorf("printing result: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))

	return err
}

// envOr returns the environment value of key, or def.
func envOr(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return def
}
