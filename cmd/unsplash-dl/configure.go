package main

import (
	"github.com/spf13/cobra"

	"unsplashdl/pkg/auth"
	"unsplashdl/pkg/ui"
)

func newConfigureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Store Unsplash API credentials",
		Long: `Prompt for an Unsplash Access Key and Secret Key and store them.

Existing credentials are always replaced. The keys are written as JSON to
config.json in the credentials directory ($HOME/.unsplash-downloader by default).

To get your keys, create an application at ` + auth.DevelopersURL + `.`,
		Example: `  # Interactive setup
  unsplash-dl configure

  # Pipe keys from another program
  printf '%s\n%s\n' "$ACCESS" "$SECRET" | unsplash-dl configure --stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigure()
		},
	}
}

func (a *app) runConfigure() error {
	store := auth.NewFileStore(a.cfg.Credentials.Dir)

	ui.PrintBanner()
	auth.ShowCredentialGuide(a.guideWriter())

	creds, err := a.newProvisioner(store).Provision()
	if err != nil {
		return err
	}

	masked := auth.MaskCredentials(creds)
	ui.PrintInfo("Access Key", masked.AccessKey)
	ui.PrintInfo("Secret Key", masked.SecretKey)
	ui.PrintInfo("Stored in", store.Path())

	return nil
}
