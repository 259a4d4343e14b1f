/*
Copyright © 2025 ithomiini-maps authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Fr4nzz/ithomiini-maps/internal/iodwca"
	"github.com/Fr4nzz/ithomiini-maps/internal/ioexcel"
	"github.com/Fr4nzz/ithomiini-maps/internal/iofetch"
	"github.com/Fr4nzz/ithomiini-maps/internal/iosources"
	"github.com/Fr4nzz/ithomiini-maps/internal/iowrite"
	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
	"github.com/Fr4nzz/ithomiini-maps/pkg/reconcile"
	"github.com/Fr4nzz/ithomiini-maps/pkg/sources"
)

// getBuildCmd returns the build command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBuildCmd() *cobra.Command {
	var (
		outputDir    string
		pretty       bool
		archivePath  string
		speciesLimit int
	)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the reconciled map dataset",
		Long: `Reconcile occurrence records from all configured sources and
write the dataset the map site consumes.

This command:
  1. Reads sources.yaml to discover the configured sources
  2. Loads the curated reference workbook (local xlsx)
  3. Downloads the field-collection and photo tabs of the Google Sheet
  4. Loads aggregator occurrences, either from a Darwin Core Archive
     or through the occurrence-search API
  5. Reconciles everything into one sequence of records
  6. Writes map_points.json and prints run statistics

Sources configured in: ~/.config/ithomaps/sources.yaml

Examples:
  # Build with the configured sources
  ithomaps build

  # Pretty-print the output into a different directory
  ithomaps build -o /tmp/data --pretty

  # Use a fresh archive download instead of the API
  ithomaps build --archive temp_gbif_download/gbif_download.zip

  # Skip aggregator API enrichment entirely
  ithomaps build -s 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(cmd, outputDir, pretty, archivePath, speciesLimit)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().StringVarP(
		&outputDir, "output", "o", "",
		"directory for map_points.json",
	)
	buildCmd.Flags().BoolVarP(
		&pretty, "pretty", "p", false,
		"indent the JSON output",
	)
	buildCmd.Flags().StringVarP(
		&archivePath, "archive", "a", "",
		"Darwin Core Archive to use instead of the aggregator API",
	)
	buildCmd.Flags().IntVarP(
		&speciesLimit, "species-limit", "s", -1,
		"taxa to enrich via the aggregator API (0 = none)",
	)

	return buildCmd
}

func runBuild(
	cmd *cobra.Command,
	outputDir string,
	pretty bool,
	archivePath string,
	speciesLimit int,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var buildOpts []config.Option
	if cmd.Flags().Changed("output") {
		buildOpts = append(buildOpts, config.OptOutputDir(outputDir))
	}
	if cmd.Flags().Changed("pretty") {
		buildOpts = append(buildOpts, config.OptOutputPretty(pretty))
	}
	if cmd.Flags().Changed("species-limit") {
		buildOpts = append(buildOpts, config.OptFetchGBIFSpeciesLimit(speciesLimit))
	}
	if len(buildOpts) > 0 {
		cfg.Update(buildOpts)
	}

	srcs, err := iosources.New(cfg).Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("archive") {
		srcs.Aggregator.ArchivePath = archivePath
	}

	input, err := gatherInput(ctx, srcs)
	if err != nil {
		return err
	}

	gn.Info("Reconciling records from all sources...")
	recs, stats, err := reconcile.New().Reconcile(input)
	if err != nil {
		return err
	}

	path, err := iowrite.New(cfg).Write(recs, stats)
	if err != nil {
		return err
	}
	iowrite.Report(stats)

	gn.Info(`Next steps:
	 - Inspect the dataset at <em>%s</em>
	 - Deploy the map site with the refreshed data
`, path)

	return nil
}

// gatherInput acquires the raw batches from every configured source. The
// reference workbook, the spreadsheet tabs and the aggregator feed are
// independent, so they load concurrently.
func gatherInput(
	ctx context.Context,
	srcs *sources.SourcesConfig,
) (reconcile.Input, error) {
	var input reconcile.Input

	g, ctx := errgroup.WithContext(ctx)

	if srcs.HasReference() {
		g.Go(func() error {
			var err error
			input.Reference, err = ioexcel.New().
				Read(srcs.Reference.Path, srcs.Reference.Label)
			return err
		})
	} else {
		gn.Warn("No reference source configured, mimicry rings will be <em>Unknown</em>")
	}

	if srcs.HasCollection() {
		col := srcs.Collection
		fetcher := iofetch.NewSheets(cfg, col.SpreadsheetID)
		g.Go(func() error {
			var err error
			input.Collection, err = fetcher.FetchTab(
				ctx, col.CollectionGID, col.Label)
			return err
		})
		if col.PhotoGID != "" {
			g.Go(func() error {
				var err error
				input.Photos, err = fetcher.FetchTab(
					ctx, col.PhotoGID, col.Label)
				return err
			})
		}
	}

	switch {
	case srcs.HasArchive():
		g.Go(func() error {
			var err error
			input.Aggregator, input.Images, err = iodwca.New().
				Process(ctx, srcs.Aggregator.ArchivePath, srcs.Aggregator.Label)
			return err
		})
	case cfg.Fetch.GBIFSpeciesLimit > 0 && len(srcs.Aggregator.Genera) > 0:
		names := srcs.Aggregator.Genera
		if len(names) > cfg.Fetch.GBIFSpeciesLimit {
			names = names[:cfg.Fetch.GBIFSpeciesLimit]
		}
		g.Go(func() error {
			var err error
			input.Aggregator, input.Images, err = iofetch.NewGBIF(cfg).
				Search(ctx, names, srcs.Aggregator.Label)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return input, err
	}
	return input, nil
}
