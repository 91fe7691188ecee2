// Package cli holds the stripe-mock-lite subcommands.
package cli

import (
	"fmt"
	"strconv"

	"github.com/kroma-labs/stripe-sentinel/internal/envutil"
	"github.com/kroma-labs/stripe-sentinel/mockserver"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	envMockPort     = "STRIPE_MOCK_PORT"
	envMockDebug    = "STRIPE_MOCK_DEBUG"
	defaultMockPort = 12111
)

func defaultPort() int {
	return envutil.GetIntEnv(envMockPort, defaultMockPort)
}

// logger also becomes envutil.Logger, so malformed environment values are
// reported on the command's stderr.
func logger(cmd *cobra.Command) zerolog.Logger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		With().Timestamp().Logger()
	envutil.Logger = l

	debug, _ := cmd.Flags().GetBool("debug")
	if !cmd.Flags().Changed("debug") {
		debug = envutil.GetBoolEnv(envMockDebug, false)
	}
	if debug {
		return l.Level(zerolog.DebugLevel)
	}
	return l.Level(zerolog.InfoLevel)
}

// ServeCmd runs the mock server until interrupted.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger(cmd)
			port, _ := cmd.Flags().GetInt("port")
			if port == 0 {
				port = defaultPort()
			}
			version, _ := cmd.Flags().GetString("version")

			srv, err := mockserver.New(
				mockserver.WithAddr(":"+strconv.Itoa(port)),
				mockserver.WithVersion(version),
				mockserver.WithLogger(log),
			)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntP("port", "p", 0, "Port to listen on (default: STRIPE_MOCK_PORT or 12111)")
	cmd.Flags().String("version", mockserver.Version, "Value of the Stripe-Mock-Version header")
	return cmd
}

// CheckCmd probes a running stripe-mock and fails when it is unreachable or
// too old.
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that stripe-mock is reachable and recent enough",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger(cmd)
			url, _ := cmd.Flags().GetString("url")
			if url == "" {
				url = "http://localhost:" + strconv.Itoa(defaultPort())
			}
			minVersion, _ := cmd.Flags().GetString("min-version")
			log.Debug().Str("url", url).Str("min_version", minVersion).Msg("probing stripe-mock")

			if err := mockserver.Check(cmd.Context(), url, minVersion); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stripe-mock at %s is ready\n", url)
			return nil
		},
	}

	cmd.Flags().StringP("url", "u", "", "Base URL (default: http://localhost:$STRIPE_MOCK_PORT)")
	cmd.Flags().String("min-version", mockserver.MinimumVersion, "Minimum accepted version")
	return cmd
}
