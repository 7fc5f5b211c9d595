package cli

import (
	"fmt"
	"os"

	"github.com/hiddenist/chress-sprites/internal/project"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the current directory as a sprites workspace",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	existed := project.ConfigExists(wd)
	if _, err := project.EnsureConfig(wd); err != nil {
		return err
	}
	if existed {
		fmt.Fprintf(cmd.OutOrStdout(), "Workspace already initialized at %s\n", wd)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized sprites workspace at %s\n", wd)
	return nil
}
