package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hiddenist/chress-sprites/internal/sheet"
	"github.com/hiddenist/chress-sprites/internal/timefmt"
	"github.com/hiddenist/chress-sprites/internal/venv"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

const statusColumnCount = 3

func runStatus(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspaceFromWD()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	now := time.Now()

	fmt.Fprintf(out, "Workspace: %s\n", ws.Root)
	fmt.Fprintf(out, "Venv:      %s\n", venvSummary(ws.VenvPath, now))

	sheets, err := sheet.Find(ws.Root)
	if err != nil {
		return err
	}
	if len(sheets) == 0 {
		fmt.Fprintln(out, "\nNo sprite sheets found matching pattern 'npc-sprites-*'")
		return nil
	}

	rows := make([][statusColumnCount]string, 0, len(sheets))
	for _, path := range sheets {
		rows = append(rows, sheetRow(path, now))
	}

	maxWidth := 0
	if f, ok := out.(*os.File); ok {
		maxWidth = terminalWidth(f)
	}
	layout := buildColumnLayout(rows, maxWidth)

	fmt.Fprintln(out)
	for _, row := range rows {
		for i, cell := range row {
			if i == statusColumnCount-1 {
				fmt.Fprintln(out, cell)
				break
			}
			fmt.Fprint(out, runewidth.FillRight(cell, layout.widths[i]+layout.gap))
		}
	}
	return nil
}

func venvSummary(path string, now time.Time) string {
	fi, err := os.Stat(path)
	if err != nil {
		return "missing (created on next run)"
	}
	return fmt.Sprintf("%s (created %s)", venv.At(path).Python(), timefmt.Relative(fi.ModTime(), now))
}

func sheetRow(path string, now time.Time) [statusColumnCount]string {
	nameInfo := "no names file"
	if names, err := sheet.LoadNames(path); err == nil && names != nil {
		nameInfo = fmt.Sprintf("%d names", len(names))
	}

	modified := "unknown"
	if fi, err := os.Stat(path); err == nil {
		modified = timefmt.Relative(fi.ModTime(), now)
	}

	return [statusColumnCount]string{filepath.Base(path), nameInfo, modified}
}

type columnLayout struct {
	widths [statusColumnCount]int
	gap    int
}

func (l columnLayout) totalWidth() int {
	total := l.gap * (statusColumnCount - 1)
	for _, w := range l.widths {
		total += w
	}
	return total
}

// buildColumnLayout sizes columns to their content; when maxWidth
// exceeds the natural width, the final column absorbs the slack.
func buildColumnLayout(rows [][statusColumnCount]string, maxWidth int) columnLayout {
	layout := columnLayout{gap: 2}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > layout.widths[i] {
				layout.widths[i] = w
			}
		}
	}
	if maxWidth > layout.totalWidth() {
		layout.widths[statusColumnCount-1] += maxWidth - layout.totalWidth()
	}
	return layout
}
