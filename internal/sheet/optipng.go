package sheet

import (
	"io"
	"os/exec"
)

// Optimizer recompresses written PNGs with optipng.
type Optimizer struct {
	path string
}

// DetectOptimizer looks for optipng on PATH.
func DetectOptimizer() (*Optimizer, bool) {
	path, err := exec.LookPath("optipng")
	if err != nil {
		return nil, false
	}
	return &Optimizer{path: path}, true
}

// Optimize recompresses one file in place. Failures are ignored: the
// unoptimized file is already on disk and correct.
func (o *Optimizer) Optimize(file string) {
	cmd := exec.Command(o.path, "-o2", "-quiet", file)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	_ = cmd.Run()
}
