package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Elysium-Labs-EU/graphctl/internal/buildinfo"
	"github.com/Elysium-Labs-EU/graphctl/internal/config"
	"github.com/Elysium-Labs-EU/graphctl/internal/database"
	"github.com/Elysium-Labs-EU/graphctl/internal/federation"
	"github.com/Elysium-Labs-EU/graphctl/internal/logutil"
	"github.com/Elysium-Labs-EU/graphctl/internal/registry"
	"github.com/Elysium-Labs-EU/graphctl/internal/ui"
)

// session is what every command works against once the root command has
// loaded configuration and picked a registry.
type session struct {
	config   *config.Config
	registry registry.Registry
	logger   *zap.Logger
}

func (s *session) service() *federation.Service {
	return federation.NewService(s.registry, s.logger)
}

func (s *session) graph() federation.GraphConfig {
	if s.config == nil {
		return nil
	}
	return s.config
}

func newTestRootCmd(reg registry.Registry, cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "graphctl",
		Short:         "Manage services of a federated graph",
		Long:          `graphctl manages the implementing services registered for a federated graph and triggers recomposition of its gateway.`,
		SilenceErrors: true,
		SilenceUsage:  true,

		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("graphctl - Test version")
			cmd.Println("Use 'graphctl help' to see available commands")
		},
	}

	s := &session{config: cfg, registry: reg, logger: zap.NewNop()}
	getSession := func() *session {
		return s
	}

	rootCmd.AddCommand(newServiceCmd(getSession))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newRootCmd() *cobra.Command {
	var s *session
	var cleanup func() error

	rootCmd := &cobra.Command{
		Use:   "graphctl",
		Short: "Manage services of a federated graph",
		Long: `graphctl manages the implementing services registered for a federated graph
and triggers recomposition of its gateway.`,
		SilenceErrors: true,
		SilenceUsage:  true,

		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(buildinfo.Get())
			cmd.Println("Use 'graphctl help' to see available commands")
		},

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			newSession, possibleCleanup, err := loadSession(cmd)
			if err != nil {
				return err
			}
			s = newSession
			cleanup = possibleCleanup
			return nil
		},

		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cleanup == nil {
				return nil
			}
			if err := cleanup(); err != nil {
				return fmt.Errorf("closing database connection on cleanup: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Project config file (default "+config.DefaultFileName+")")
	rootCmd.PersistentFlags().String("key", "", "Registry API key (overrides GRAPHCTL_KEY)")
	rootCmd.PersistentFlags().String("endpoint", "", "Registry endpoint (default "+config.DefaultEndpoint+")")
	rootCmd.PersistentFlags().Bool("local", false, "Use the local registry state instead of the remote registry")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "Print debug logs to stderr")

	getSession := func() *session {
		return s
	}

	rootCmd.AddCommand(newServiceCmd(getSession))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func loadSession(cmd *cobra.Command) (*session, func() error, error) {
	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, nil, err
	}
	apiKey, err := flags.GetString("key")
	if err != nil {
		return nil, nil, err
	}
	endpoint, err := flags.GetString("endpoint")
	if err != nil {
		return nil, nil, err
	}
	local, err := flags.GetBool("local")
	if err != nil {
		return nil, nil, err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(config.Options{ConfigPath: configPath, APIKey: apiKey, Endpoint: endpoint})
	if err != nil {
		return nil, nil, err
	}

	logger := logutil.NewLogger(verbose, cmd.ErrOrStderr())
	logger.Debug("configuration loaded",
		zap.String("file", cfg.FilePath),
		zap.String("graph", cfg.Name),
		zap.String("tag", cfg.Tag),
		zap.Bool("local", local),
	)

	if local {
		db, err := database.NewDB(cmd.Context(), cfg.BaseDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		reg := registry.NewLocalRegistry(db, logger)
		return &session{config: cfg, registry: reg, logger: logger}, db.CloseDBConnection, nil
	}

	reg := registry.NewRemoteRegistry(cfg.Endpoint, cfg.APIKey, cfg.Timeout, logger)
	return &session{config: cfg, registry: reg, logger: logger}, nil, nil
}

func Execute() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", ui.LabelError.Render("error"), err)

		var usageErr *federation.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "  %s %s %s\n", ui.TextMuted.Render("run:"), ui.TextCommand.Render("graphctl help"), ui.TextMuted.Render("for usage"))
		}
		os.Exit(1)
	}
}
