package cli

import (
	"os"

	"github.com/hiddenist/chress-sprites/internal/project"
	"golang.org/x/term"
)

func loadWorkspaceFromWD() (*project.Workspace, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return project.Discover(wd)
}

func terminalWidth(f *os.File) int {
	if !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
