package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/hiddenist/chress-sprites/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			// The failing child already wrote its diagnostics; adopt its code.
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "chress-sprites:", err)
		os.Exit(1)
	}
}
