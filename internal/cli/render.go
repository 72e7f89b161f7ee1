package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/export"
	"github.com/youruser/coverapp/internal/util"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		presetName string
		patchFile  string
		format     string
		background string
		quality    int
		scale      float64
		outDir     string
		imagesDir  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one cover to a file",
		Example: `  # Render the default cover
  covergen render

  # Render a saved preset as JPEG at 3x
  covergen render --preset evening --format jpeg --scale 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(opts.cfg)
			defer app.Close()

			if imagesDir != "" {
				if _, err := app.RegisterDir(imagesDir); err != nil {
					return fmt.Errorf("registering images: %w", err)
				}
			}

			cfg := opts.cfg.Defaults()
			if presetName != "" {
				p, err := app.Presets.Load(presetName)
				if err != nil {
					return err
				}
				cfg = p.Config
			}
			if patchFile != "" {
				raw, err := os.ReadFile(patchFile)
				if err != nil {
					return err
				}
				if cfg, err = cfg.Patch(raw); err != nil {
					return err
				}
			}
			if scale == 0 {
				scale = opts.cfg.Render.ExportScale
			}

			f, err := export.Single{Renderer: app.Renderer, Scale: scale}.Run(cmd.Context(), export.NopHost{}, cfg, export.SingleOptions{
				Format:     format,
				Background: background,
				Quality:    quality,
			})
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, f.Name)
			if err := util.WriteFileAtomic(path, f.Data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetName, "preset", "", "Start from a saved preset")
	cmd.Flags().StringVar(&patchFile, "patch", "", "JSON file merged over the configuration")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "Output format (png, jpeg)")
	cmd.Flags().StringVar(&background, "background", "", "Background for JPEG flattening")
	cmd.Flags().IntVar(&quality, "quality", 0, "JPEG quality")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Export scale (1-4)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&imagesDir, "images", "", "Directory of images to register as uploads")

	return cmd
}
