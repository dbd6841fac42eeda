package cli

import (
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"changes2aptly/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "CHANGES2APTLY"

var newAppService = app.NewService

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Format     string
	Output     string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:          "changes2aptly [flags] CHANGES|DIR...",
		Short:        "Generate aptly package records from Debian changes files",
		Version:      version,
		SilenceUsage: true,
		Args:         requireArgs("at least one changes file is required"),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, cfg, args)
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.Flags().StringVar(&cfg.Format, "format", "json", "Output format (json or yaml)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "Write records to this file instead of stdout")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	cmd.AddCommand(newInspectKeyCommand())
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg RootConfig, args []string) error {
	service := newAppService()
	result, err := service.Generate(cmd.Context(), app.GenerateRequest{
		ChangesPaths: args,
		Format:       resolveString(cmd, cfg.Format, "format", "format"),
		Output:       cmd.OutOrStdout(),
		OutputPath:   resolveString(cmd, cfg.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	log.Ctx(cmd.Context()).Info().
		Int("changes", result.Manifests).
		Int("records", result.Records).
		Msg("aptly records written")
	return nil
}

func requireArgs(msg string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(msg)
		}
		return nil
	}
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("changes2aptly")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/changes2aptly")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging sends logs to out; stdout carries the records.
func setupLogging(out io.Writer, level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeNotFound:
		return 3
	case errbuilder.CodeInternal:
		return 4
	default:
		return 1
	}
}
