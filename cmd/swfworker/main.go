// Command swfworker runs a decider/activity worker against a domain and
// task list, hosting whatever workflow types have registered themselves
// into worker.DefaultRegistry (spec §6 Worker CLI surface).
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/swf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swf-go/decider/internal"
	"github.com/swf-go/decider/transport"
	"github.com/swf-go/decider/worker"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		domain         string
		taskList       string
		identity       string
		workflowPkgs   []string
		registerRemote bool
		setupLogger    bool
	)

	cmd := &cobra.Command{
		Use:   "swfworker",
		Short: "Run a client-side decider/activity worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if setupLogger {
				var err error
				logger, err = zap.NewProduction()
				if err != nil {
					return fmt.Errorf("build logger: %w", err)
				}
			}
			defer logger.Sync() //nolint:errcheck

			if len(workflowPkgs) > 0 {
				logger.Info("package-to-scan is informational only: link the packages in via blank import, Go cannot scan an unlinked package at runtime",
					zap.Strings("packages", workflowPkgs))
			}

			awsCfg, err := awsconfig.LoadDefaultConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("load aws config: %w", err)
			}
			tr := transport.New(swf.NewFromConfig(awsCfg))

			if registerRemote {
				if err := worker.DefaultRegistry.Register(cmd.Context(), domain, tr); err != nil {
					var fault *internal.RegistrationFault
					if errors.As(err, &fault) {
						logger.Error("registration fault, exiting", zap.Error(fault))
					}
					return err
				}
			}

			w := worker.New(tr, domain, taskList, worker.DefaultRegistry, worker.Options{
				Identity: identity,
				Logger:   logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "workflow domain (required)")
	cmd.Flags().StringVar(&taskList, "task-list", "", "task list to poll (required)")
	cmd.Flags().StringVar(&identity, "identity", "", "worker identity (default <fqdn>-<pid>)")
	cmd.Flags().StringSliceVar(&workflowPkgs, "workflows", nil, "packages to scan for workflow factories (informational; link via blank import)")
	cmd.Flags().BoolVar(&registerRemote, "register-remote", true, "register/verify workflow types with the service before polling")
	cmd.Flags().BoolVar(&setupLogger, "setup-logger", true, "configure a production zap logger instead of a no-op one")

	cmd.MarkFlagRequired("domain")    //nolint:errcheck
	cmd.MarkFlagRequired("task-list") //nolint:errcheck

	return cmd
}
