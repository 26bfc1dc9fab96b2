package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"unsplashdl/pkg/auth"
	"unsplashdl/pkg/config"
	"unsplashdl/pkg/fetch"
	"unsplashdl/pkg/logger"
	"unsplashdl/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// app carries the process-level dependencies shared by all commands
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// prompter overrides how credentials are asked for
	prompter auth.Prompter

	// Global flags
	configFile string
	configDir  string
	logLevel   string
	noColor    bool
	quiet      bool
	verbose    bool
	useStdin   bool

	cfg *config.Config
	log logger.Logger
}

func newApp() *app {
	return &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// newRootCmd builds the command tree around a
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unsplash-dl",
		Short: "Download images from Unsplash from the command line",
		Long: `unsplash-dl searches Unsplash for photos matching a query and downloads
them into a local directory.

Run 'unsplash-dl configure' once to store your Unsplash API keys, then
'unsplash-dl download <query>' to fetch images. If no keys are stored yet,
download asks for them first.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "settings file (default is ./.unsplash-dl.yaml or $HOME/.unsplash-downloader/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "directory holding stored credentials (default is $HOME/.unsplash-downloader)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "show debug logs")
	rootCmd.PersistentFlags().BoolVar(&a.useStdin, "stdin", false, "read credential answers from standard input instead of a terminal")

	rootCmd.SetVersionTemplate(`unsplash-dl {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.AddCommand(newConfigureCmd(a))
	rootCmd.AddCommand(newDownloadCmd(a))
	rootCmd.AddCommand(newSettingsCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// setup wires output, configuration and logging before any command runs
func (a *app) setup(cmd *cobra.Command) error {
	a.setupOutput()
	return a.loadConfig(cmd)
}

// setupOutput applies the color and quiet flags to terminal output
func (a *app) setupOutput() {
	ui.SetOutput(a.stdout, a.stderr)
	ui.SetColor(!a.noColor)
	ui.SetQuiet(a.quiet)
}

// loadConfig merges all configuration sources and installs the logger
func (a *app) loadConfig(cmd *cobra.Command) error {
	flags := make(map[string]interface{})
	if a.logLevel != "" {
		flags["log-level"] = a.logLevel
	}
	if a.verbose {
		flags["log-level"] = "debug"
	}
	if a.quiet {
		flags["log-level"] = "error"
	}
	if a.configDir != "" {
		flags["config-dir"] = a.configDir
	}

	fs := cmd.Flags()
	if fs.Changed("output") {
		v, _ := fs.GetString("output")
		flags["output"] = v
	}
	if fs.Changed("count") {
		v, _ := fs.GetInt("count")
		flags["count"] = v
	}
	if fs.Changed("size") {
		v, _ := fs.GetString("size")
		flags["size"] = v
	}
	if fs.Changed("concurrency") {
		v, _ := fs.GetInt("concurrency")
		flags["concurrency"] = v
	}

	cfg, err := config.Load(a.configFile, flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.initLogger(&cfg.Logging); err != nil {
		return err
	}

	a.log.DebugWithFields("Configuration loaded", map[string]interface{}{
		"base_url":        cfg.API.BaseURL,
		"credentials_dir": cfg.Credentials.Dir,
		"output_dir":      cfg.Download.OutputDir,
	})

	return nil
}

// initLogger installs a logger writing to stderr as the global logger
func (a *app) initLogger(cfg *config.LoggingConfig) error {
	log, err := logger.NewWithWriter(cfg, a.stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetLogger(log)
	a.log = log
	return nil
}

// credentialPrompter returns the prompter used for provisioning
func (a *app) credentialPrompter() auth.Prompter {
	if a.prompter != nil {
		return a.prompter
	}
	if a.useStdin {
		return auth.NewReaderPrompter(a.stdin, a.stdout)
	}
	return auth.NewTerminalPrompter()
}

// guideWriter is where operator guidance goes; nothing in quiet mode
func (a *app) guideWriter() io.Writer {
	if a.quiet {
		return io.Discard
	}
	return a.stdout
}

// newProvisioner builds a provisioner over the file store
func (a *app) newProvisioner(store auth.CredentialStore) *auth.Provisioner {
	return auth.NewProvisioner(store, a.credentialPrompter(), a.guideWriter(), a.log)
}

// credentialsDir returns the effective credentials directory
func (a *app) credentialsDir() string {
	if a.cfg != nil {
		return a.cfg.Credentials.Dir
	}
	if a.configDir != "" {
		return a.configDir
	}
	return config.DefaultCredentialsDir()
}

// reportError prints a human-readable message for err
func (a *app) reportError(err error) {
	var readErr *auth.ReadError
	var provErr *auth.ProvisioningError
	var pipelineErr *fetch.PipelineError

	switch {
	case errors.As(err, &pipelineErr):
		ui.PrintError("Failed to download images", err)
	case errors.As(err, &readErr):
		ui.PrintError("Failed to read configuration", err)
		ui.PrintWarning(fmt.Sprintf("Fix or remove %s, or run 'unsplash-dl configure' to overwrite it", readErr.Path))
	case errors.As(err, &provErr):
		ui.PrintError("Failed to configure credentials", err)
		switch {
		case errors.Is(err, auth.ErrNotInteractive):
			ui.PrintWarning("Run 'unsplash-dl configure' from an interactive terminal, or pass --stdin to pipe the keys in")
		case provErr.Op == "save":
			ui.PrintWarning(fmt.Sprintf("Could not write credentials to %s. Make sure the directory is writable, "+
				"or choose another one with --config-dir or UNSPLASHDL_CONFIG_DIR", a.credentialsDir()))
		}
	default:
		ui.PrintError("Error", err)
	}
}

// exitCode maps a command result to a process exit status
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	a := newApp()
	err := newRootCmd(a).ExecuteContext(context.Background())
	if err != nil {
		a.reportError(err)
	}
	return exitCode(err)
}
