package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	app "KFlash/internal/app/flasher"
	"KFlash/internal/config"
	"KFlash/internal/device"
	"KFlash/internal/logger"
	"KFlash/internal/system"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "kflash",
		Short:         "Put Klipper boards into DFU mode for flashing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, log logger.Logger) error {
				if err := a.Run(ctx); err != nil {
					return err
				}
				log.Info("KFlash exited")
				return nil
			})
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "devices",
			Short: "List serial and DFU devices without opening the menu",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App, log logger.Logger) error {
					out := cmd.OutOrStdout()
					for _, entry := range a.Devices(ctx) {
						if entry.Kind == device.KindSerial {
							fmt.Fprintf(out, "%s\t%s\n", entry.Label, entry.Path)
							continue
						}
						fmt.Fprintln(out, entry.Label)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				loaded, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				out, err := config.Dump(loaded.Config)
				if err != nil {
					return err
				}
				if loaded.File != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", loaded.File)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			},
		},
	)

	return root
}

func loadConfig(cmd *cobra.Command) (*config.Loaded, error) {
	explicit, err := cmd.Flags().GetString(config.ConfigFlag)
	if err != nil {
		return nil, err
	}
	return config.Load(cmd.Flags(), explicit)
}

// withApp loads the configuration, builds the application and runs fn with
// a context cancelled on SIGINT or SIGTERM.
func withApp(cmd *cobra.Command, fn func(context.Context, *app.App, logger.Logger) error) error {
	loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := app.NewLogger(loaded.Config)
	if err != nil {
		return err
	}
	defer closeLog()

	logStartup(log, loaded)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			log.Info("Received exit signal, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return fn(ctx, app.New(loaded.Config, log), log)
}

func logStartup(log logger.Logger, loaded *config.Loaded) {
	cfg := loaded.Config
	source := loaded.File
	if source == "" {
		source = "defaults"
	}
	log.Debug("configuration: %s (klipper=%s, devices=%s, driver=%s)", source, cfg.KlipperDir, cfg.DeviceSource, cfg.Driver)
	if cfg.DeviceSource == system.SourcePorts {
		log.Debug("serial devices are discovered through the port enumerator")
	}
}
