package cli

import (
	"github.com/hiddenist/chress-sprites/internal/version"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chress-sprites",
		Short:         "Extract NPC sprites and portraits from chress sprite sheets",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runStatus,
	}

	cmd.AddCommand(
		newInitCommand(),
		newRunCommand(),
		newExtractCommand(),
		newDoctorCommand(),
		newVersionCommand(),
	)

	return cmd
}
