// vibecraftd is the VibeCraft daemon: it bridges an MCP-speaking agent
// to a running game client, serving the tool catalog over stdio and
// server-sent events.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/kiosk404/vibecraft/internal/vibecraftd"
	"github.com/kiosk404/vibecraft/internal/vibecraftd/config"
	"github.com/kiosk404/vibecraft/internal/vibecraftd/options"
	"github.com/kiosk404/vibecraft/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"
)

const (
	exitConfigInvalid     = 1
	exitBridgeUnreachable = 2
)

func main() {
	if err := newDaemonCommand().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newDaemonCommand() *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "vibecraftd",
		Short: "vibecraftd bridges an MCP agent to a running game client",
		Long: heredoc.Doc(`
			vibecraftd is the VibeCraft daemon. It holds one authenticated
			WebSocket to the in-game helper, advertises the build/inspect
			tool catalog over MCP (stdio and SSE), and turns declarative
			build requests into a sanitized, ordered command stream.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.BindEnv(viper.GetViper()); err != nil {
				return configError(err)
			}
			if err := opts.ApplyViper(viper.GetViper()); err != nil {
				return configError(err)
			}

			if errs := opts.Validate(); len(errs) > 0 {
				return configError(errors.Join(errs...))
			}

			if err := logger.InitLog(opts.LogFile); err != nil {
				return configError(err)
			}
			defer logger.FlushLog()

			cfg, err := config.CreateConfigFromOptions(opts)
			if err != nil {
				return configError(err)
			}

			logger.Info("vibecraftd starting: %s", opts.String())
			return vibecraftd.Run(cfg)
		},
	}

	fss := opts.Flags()
	for _, name := range fss.Order {
		cmd.Flags().AddFlagSet(fss.FlagSets[name])
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + "\n" + fss.PrintSections(80))

	_ = viper.BindPFlags(cmd.Flags())

	return cmd
}

// configError tags an error as fatal misconfiguration so main exits 1.
type configErr struct{ error }

func configError(err error) error { return configErr{err} }

func exitCodeFor(err error) int {
	fmt.Fprintln(os.Stderr, "Error:", err)

	var ce configErr
	if errors.As(err, &ce) {
		return exitConfigInvalid
	}

	var verr *verrors.Error
	if errors.As(err, &verr) {
		switch verr.Kind {
		case verrors.KindConfigInvalid:
			return exitConfigInvalid
		case verrors.KindBridgeUnavailable, verrors.KindBridgeAuthFailed:
			return exitBridgeUnreachable
		}
	}
	return exitConfigInvalid
}
