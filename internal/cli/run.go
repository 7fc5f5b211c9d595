package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hiddenist/chress-sprites/internal/venv"
	"github.com/spf13/cobra"
)

var (
	colorPhase = color.New(color.FgCyan, color.Bold).SprintFunc()
	colorNote  = color.New(color.FgHiBlack).SprintFunc()
	colorDone  = color.New(color.FgGreen, color.Bold).SprintFunc()
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [args...]",
		Short: "Prepare the Python environment and run the extraction script",
		Long: `Ensures the workspace virtual environment exists, installs the
imaging dependency when missing, then invokes the extraction script with
every argument forwarded verbatim. The script's exit code becomes this
command's exit code.`,
		// Nothing after "run" belongs to us; even flag-shaped arguments
		// go to the script untouched.
		DisableFlagParsing: true,
		RunE:               runRun,
	}
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspaceFromWD()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := &venv.Bootstrapper{
		Interpreter: ws.Config.Python,
		Env:         venv.At(ws.VenvPath),
		Stdout:      out,
		Stderr:      cmd.ErrOrStderr(),
	}

	fmt.Fprintln(out, colorPhase("Checking virtual environment..."))
	created, err := b.EnsureEnv()
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(out, colorNote("  created "+ws.Config.VenvDir))
	}

	fmt.Fprintln(out, colorPhase(fmt.Sprintf("Checking %s...", ws.Config.Imaging.Package)))
	installed, err := b.EnsureModule(ws.Config.Imaging.ProbeModule, ws.Config.Imaging.Package)
	if err != nil {
		return err
	}
	if installed {
		fmt.Fprintln(out, colorNote("  installed "+ws.Config.Imaging.Package))
	}

	fmt.Fprintln(out, colorPhase("Running "+ws.Config.Script+"..."))
	if err := b.Delegate(ws.ScriptPath, args); err != nil {
		// Returned untouched so main exits with the script's own code.
		return err
	}

	fmt.Fprintln(out, colorDone("Done."))
	return nil
}
