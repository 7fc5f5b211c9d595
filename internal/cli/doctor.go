package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/hiddenist/chress-sprites/internal/config"
	"github.com/hiddenist/chress-sprites/internal/project"
	"github.com/hiddenist/chress-sprites/internal/venv"
	"github.com/spf13/cobra"
)

func newDoctorCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose workspace and Python environment issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show passing checks too")
	return cmd
}

type doctorContext struct {
	Workspace *project.Workspace
}

type doctorCheck struct {
	Name string
	Fn   func(*doctorContext) error
}

func runDoctor(cmd *cobra.Command, verbose bool) error {
	ctx := &doctorContext{}
	wd, _ := os.Getwd()
	checks := []doctorCheck{
		{Name: "workspace layout", Fn: func(c *doctorContext) error {
			ws, err := project.Discover(wd)
			if err != nil {
				return err
			}
			c.Workspace = ws
			return nil
		}},
		{Name: "python installed", Fn: checkPython},
		{Name: "extraction script present", Fn: checkScript},
		{Name: "virtual environment", Fn: checkVenv},
		{Name: "imaging dependency importable", Fn: checkImaging},
		{Name: "optipng installed", Fn: checkOptipng},
	}

	var failures []string
	for _, check := range checks {
		err := check.Fn(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("✗ %s: %v", check.Name, err))
			continue
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", check.Name)
		}
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintln(cmd.ErrOrStderr(), failure)
		}
		return fmt.Errorf("%d doctor checks failed", len(failures))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "healthy!")
	return nil
}

func checkPython(ctx *doctorContext) error {
	interpreter := "python3"
	if ctx.Workspace != nil {
		interpreter = ctx.Workspace.Config.Python
	}
	if _, err := exec.LookPath(interpreter); err != nil {
		return fmt.Errorf("%s not found on PATH", interpreter)
	}
	return nil
}

func checkScript(ctx *doctorContext) error {
	if ctx.Workspace == nil {
		return errors.New("workspace not discovered")
	}
	if _, err := os.Stat(ctx.Workspace.ScriptPath); err != nil {
		return fmt.Errorf("%s missing", ctx.Workspace.Config.Script)
	}
	return nil
}

func checkVenv(ctx *doctorContext) error {
	if ctx.Workspace == nil {
		return errors.New("workspace not discovered")
	}
	if !venv.At(ctx.Workspace.VenvPath).Exists() {
		return errors.New("not created yet; run `chress-sprites run` to provision it")
	}
	return nil
}

func checkImaging(ctx *doctorContext) error {
	if ctx.Workspace == nil {
		return errors.New("workspace not discovered")
	}
	env := venv.At(ctx.Workspace.VenvPath)
	if !env.Exists() {
		return errors.New("virtual environment missing")
	}
	probe := exec.Command(env.Python(), "-c", "import "+ctx.Workspace.Config.Imaging.ProbeModule)
	probe.Env = env.Environ(os.Environ())
	if err := probe.Run(); err != nil {
		return fmt.Errorf("%s not importable; run `chress-sprites run` to install it", ctx.Workspace.Config.Imaging.ProbeModule)
	}
	return nil
}

func checkOptipng(ctx *doctorContext) error {
	mode := config.OptipngAuto
	if ctx.Workspace != nil {
		mode = ctx.Workspace.Config.Extract.Optipng
	}
	if mode != config.OptipngRequire {
		return nil
	}
	if _, err := exec.LookPath("optipng"); err != nil {
		return errors.New("required by config but not found on PATH")
	}
	return nil
}
