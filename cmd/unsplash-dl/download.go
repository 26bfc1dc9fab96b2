package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"unsplashdl/pkg/auth"
	"unsplashdl/pkg/config"
	"unsplashdl/pkg/fetch"
	"unsplashdl/pkg/ui"
)

func newDownloadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [query]",
		Short: "Search Unsplash and download the matching images",
		Long: `Search Unsplash for photos matching the query and download them.

Images are saved as <query>-<photo id>.jpg in the output directory, with every
character of the query other than ASCII letters and digits replaced by "-".
Multiple words may be passed without quotes.

If no credentials are stored yet, you are asked for them before the search.`,
		Example: `  # Five regular-sized images of mountains
  unsplash-dl download mountains

  # Three full-size images into a custom directory
  unsplash-dl download "new york" -n 3 -s full -o ./nyc`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDownload(cmd.Context(), strings.Join(args, " "))
		},
	}

	cmd.Flags().IntP("count", "n", config.DefaultCount, "number of images to download")
	cmd.Flags().StringP("size", "s", config.DefaultSize, "image size (small, regular, full)")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir, "output directory")
	cmd.Flags().Int("concurrency", 0, "maximum simultaneous downloads (0 for no limit)")

	return cmd
}

// loadCredentials returns stored credentials, provisioning them when none exist
func (a *app) loadCredentials() (*auth.Credentials, error) {
	store := auth.NewFileStore(a.cfg.Credentials.Dir)

	creds, err := store.Load()
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, auth.ErrCredentialsNotFound) {
		return nil, err
	}

	a.log.InfoWithFields("No stored credentials, starting setup", map[string]interface{}{
		"path": store.Path(),
	})
	ui.PrintWarning("No Unsplash credentials found")
	auth.ShowCredentialGuide(a.guideWriter())

	return a.newProvisioner(store).Provision()
}

func (a *app) runDownload(ctx context.Context, query string) error {
	creds, err := a.loadCredentials()
	if err != nil {
		return err
	}

	req := fetch.Request{
		Query:     query,
		Count:     a.cfg.Download.Count,
		Size:      a.cfg.Download.Size,
		OutputDir: a.cfg.Download.OutputDir,
	}

	pipeline := fetch.NewFromConfig(a.cfg, creds.AccessKey, fetch.WithProgress(!a.quiet))

	summary, err := pipeline.Run(ctx, req)
	if err != nil {
		return err
	}

	if summary.Found == 0 {
		ui.PrintWarning(fmt.Sprintf("No images found for query: %q", query))
		return nil
	}

	ui.PrintSuccess(fmt.Sprintf("Successfully downloaded %d images to %s", summary.Downloaded, summary.OutputDir))
	return nil
}
