package main

import (
	"github.com/jrsteele09/hospital-portal/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	newConfig func() config.Config
}

func (o *rootOptions) config() config.Config {
	if o.newConfig == nil {
		return config.New()
	}
	return o.newConfig()
}

func rootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Hospital portal for doctors and patients",
		Long: `portal serves the hospital web portal and offers the same session from the
command line. Credentials are persisted between runs, so logging in with
"portal login" also logs in a running "portal serve" that shares the store.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		serveCmd(opts),
		loginCmd(opts),
		logoutCmd(opts),
		whoamiCmd(opts),
		appointmentsCmd(opts),
	)
	return cmd
}
