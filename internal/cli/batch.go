package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/bulk"
	"github.com/youruser/coverapp/internal/export"
	"github.com/youruser/coverapp/internal/util"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		imagesDir  string
		presetName string
		out        string
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "batch <spreadsheet>",
		Short: "Render every row of a spreadsheet into a zip archive",
		Long: `Reads an .xlsx or .csv file, maps each row onto the base configuration
and writes one PNG per row into a zip archive. Rows that fail to render
are logged and skipped.`,
		Example: `  covergen batch sessions.xlsx --images ./photos --out covers.zip`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(opts.cfg)
			defer app.Close()

			if imagesDir != "" {
				n, err := app.RegisterDir(imagesDir)
				if err != nil {
					return fmt.Errorf("registering images: %w", err)
				}
				slog.Info("Registered images", "dir", imagesDir, "count", n)
			}

			base := opts.cfg.Defaults()
			if presetName != "" {
				p, err := app.Presets.Load(presetName)
				if err != nil {
					return err
				}
				base = p.Config
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			mapper := bulk.Mapper{Assets: app.Assets, Catalog: app.Catalog, Defaults: base}
			res, err := mapper.Ingest(cmd.Context(), data, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			if res.MissingCount > 0 {
				slog.Warn("Rows reference images that were not found", "count", res.MissingCount, "files", res.Missing)
			}

			if scale == 0 {
				scale = opts.cfg.Render.ExportScale
			}
			host := export.NopHost{OnStatus: func(s export.Status) {
				slog.Info("Batch export", "state", s.State, "current", s.Current, "total", s.Total)
			}}
			result, err := export.Batch{Renderer: app.Renderer, Scale: scale}.Run(cmd.Context(), host, base, res.Items)
			if err != nil {
				return err
			}

			if out == "" {
				out = result.Name
			}
			if err := util.WriteFileAtomic(out, result.Archive); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d covers\n", out, result.Succeeded, result.Requested)
			return nil
		},
	}

	cmd.Flags().StringVar(&imagesDir, "images", "", "Directory of images referenced by the spreadsheet")
	cmd.Flags().StringVar(&presetName, "preset", "", "Base configuration preset")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Archive path (default batch_covers.zip)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Export scale (1-4)")

	return cmd
}
