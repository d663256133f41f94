package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/chainforge/internal/app"
)

var version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 2, Message: err.Error()}
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// Execute runs the chainforge command tree with args. Results and help go to
// stdout, logs to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// settings carries the per-invocation viper instance. Flags, CHAINFORGE_*
// environment variables and an optional settings file all feed it.
type settings struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

// NewRootCommand builds the chainforge command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	s := &settings{v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "chainforge",
		Short: "Assemble ordered component chains from declarative configuration",
		Long: `chainforge reads component and chain declarations from .hcl and .yaml
files, resolves inheritance and exclusions, orders every chain by its
before/after/provides constraints and publishes the result.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.initConfig,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&s.cfgFile, "config", "c", "", "settings file (yaml, json or toml)")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("exclusion-policy", "warn", "How to treat exclusions that remove nothing. Options: 'warn', 'ignore', 'fail'.")

	root.AddCommand(s.assembleCommand(), s.validateCommand(), s.serveCommand())
	return root
}

// initConfig binds the executing command's flags and reads the settings file.
func (s *settings) initConfig(cmd *cobra.Command, _ []string) error {
	s.v.SetEnvPrefix("CHAINFORGE")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	if err := s.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if s.cfgFile == "" {
		return nil
	}
	s.v.SetConfigFile(s.cfgFile)
	if err := s.v.ReadInConfig(); err != nil {
		return usageError(fmt.Errorf("reading settings file %s: %w", s.cfgFile, err))
	}
	return nil
}

// appConfig merges positional paths with the bound settings.
func (s *settings) appConfig(args []string) (*app.Config, error) {
	paths := args
	if len(paths) == 0 {
		paths = s.v.GetStringSlice("paths")
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPaths:     paths,
		LogFormat:       strings.ToLower(s.v.GetString("log-format")),
		LogLevel:        strings.ToLower(s.v.GetString("log-level")),
		HealthcheckPort: s.v.GetInt("healthcheck-port"),
		Watch:           s.v.GetBool("watch"),
		WatchDebounce:   s.v.GetDuration("watch-debounce"),
		ExclusionPolicy: s.v.GetString("exclusion-policy"),
		OutputFormat:    strings.ToLower(s.v.GetString("output")),
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

func (s *settings) newApp(args []string) (*app.App, error) {
	cfg, err := s.appConfig(args)
	if err != nil {
		return nil, err
	}
	return app.NewApp(s.stderr, cfg, nil)
}

func (s *settings) assembleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assemble [PATH...]",
		Short: "Build every chain once and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			return a.Assemble(cmd.Context(), s.stdout)
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format. Options: 'text' or 'json'.")
	return cmd
}

func (s *settings) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [PATH...]",
		Short: "Check the configuration without publishing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			if err := a.Validate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(s.stdout, "Configuration is valid.")
			return nil
		},
	}
}

func (s *settings) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [PATH...]",
		Short: "Keep the assembled chains live and rebuild them on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().Int("healthcheck-port", 8080, "Port for the HTTP health, metrics and chains server. 0 is disabled.")
	cmd.Flags().Bool("watch", true, "Rebuild when configuration files change.")
	cmd.Flags().Duration("watch-debounce", 500*time.Millisecond, "Quiet period before a change triggers a rebuild.")
	return cmd
}
