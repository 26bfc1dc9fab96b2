package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"unsplashdl/pkg/config"
	"unsplashdl/pkg/ui"
)

func newSettingsCmd(a *app) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the settings file",
		Long: `Manage the unsplash-dl settings file.

Settings are merged from, highest priority first:
  - Command line flags
  - Environment variables (UNSPLASHDL_*)
  - .env files
  - Settings file
  - Default values

Credentials are not part of the settings file; use 'unsplash-dl configure'.`,
		// Subcommands load configuration themselves
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setupOutput()
			return a.initLogger(&config.LoggingConfig{Level: "warn"})
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values",
		Long: `Write a settings file holding every option at its default value.

The file is written to the --config path, or to
$HOME/.unsplash-downloader/settings.yaml when no path is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSettingsInit(force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSettingsShow(cmd)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a settings file for errors",
		Long: `Check the settings file for syntax errors and invalid values.

The --config path is checked when given, otherwise the first file found in
./.unsplash-dl.yaml or $HOME/.unsplash-downloader/settings.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSettingsValidate()
		},
	}

	settingsCmd.AddCommand(initCmd, showCmd, validateCmd)
	return settingsCmd
}

func (a *app) runSettingsInit(force bool) error {
	path := a.configFile
	if path == "" {
		path = config.DefaultSettingsPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	a.log.InfoWithFields("Settings file written", map[string]interface{}{
		"path": path,
	})

	ui.PrintSuccess("Settings file created: " + path)
	ui.PrintInfo("Next", "edit the file, then run 'unsplash-dl settings validate'")
	return nil
}

func (a *app) runSettingsShow(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	data, err := yaml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to format settings: %w", err)
	}

	ui.PrintHighlight("Current Settings")
	if !a.quiet {
		fmt.Fprintln(a.stdout)
		fmt.Fprint(a.stdout, string(data))
	}

	source := config.FindSettingsFile(a.configFile)
	if source == "" {
		source = "(none, using defaults)"
	}
	ui.PrintInfo("Settings file", source)
	ui.PrintInfo("Credentials", ui.Dim(a.cfg.Credentials.Dir))

	return nil
}

func (a *app) runSettingsValidate() error {
	path := config.FindSettingsFile(a.configFile)
	if path == "" {
		return fmt.Errorf("no settings file found; create one with 'unsplash-dl settings init' or pass --config")
	}

	ui.PrintInfo("Validating settings", path)

	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("settings file %s is invalid: %w", path, err)
	}

	ui.PrintSuccess("Settings are valid")
	ui.PrintInfo("Output directory", cfg.Download.OutputDir)
	ui.PrintInfo("Image size", cfg.Download.Size)
	ui.PrintInfo("Count", fmt.Sprintf("%d", cfg.Download.Count))
	ui.PrintInfo("Log level", cfg.Logging.Level)
	return nil
}
