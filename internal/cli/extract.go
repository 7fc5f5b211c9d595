package cli

import (
	"fmt"

	"github.com/hiddenist/chress-sprites/internal/config"
	"github.com/hiddenist/chress-sprites/internal/sheet"
	"github.com/spf13/cobra"
)

func newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [output-dir]",
		Short: "Slice sprite sheets natively, without Python",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExtract,
	}
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspaceFromWD()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	outputDir := ws.Config.Extract.OutputDir
	if len(args) == 1 {
		outputDir = args[0]
	}

	sheets, err := sheet.Find(ws.Root)
	if err != nil {
		return err
	}
	if len(sheets) == 0 {
		return fmt.Errorf("no sprite sheets found matching pattern 'npc-sprites-*' in %s", ws.Root)
	}

	optimizer, err := resolveOptimizer(cmd, ws.Config.Extract.Optipng)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Found %d sprite sheet(s)\n", len(sheets))
	fmt.Fprintf(out, "Output directory: %s\n\n", outputDir)

	x := &sheet.Extractor{
		OutputDir: outputDir,
		Optimizer: optimizer,
		Log:       out,
	}
	for _, path := range sheets {
		if err := x.ExtractSheet(path); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "All done! Extracted sprites saved to '%s'\n", outputDir)
	return nil
}

func resolveOptimizer(cmd *cobra.Command, mode string) (*sheet.Optimizer, error) {
	if mode == config.OptipngOff {
		return nil, nil
	}
	optimizer, found := sheet.DetectOptimizer()
	if found {
		fmt.Fprintln(cmd.OutOrStdout(), "optipng detected; extracted files will be recompressed")
		return optimizer, nil
	}
	if mode == config.OptipngRequire {
		return nil, fmt.Errorf("optipng required by config but not found on PATH")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "optipng not found; using basic PNG optimization only")
	return nil, nil
}
