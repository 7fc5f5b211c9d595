// Package sheet slices fixed-layout NPC sprite sheets into individual
// sprite and portrait images.
//
// A sheet is 160x160 pixels arranged as 5 rows by 5 columns of 32x32
// cells. The first column packs four 16x16 sprites per cell (2x2); the
// remaining four columns hold one 32x32 portrait each. An optional
// sidecar text file next to the sheet supplies one character name per
// line, mapped row-major onto the 20 sprite/portrait slots.
package sheet

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// Size is the expected width and height of a sheet in pixels.
	Size = 160
	// GridRows and GridCols describe the cell grid.
	GridRows = 5
	GridCols = 5
	// CellSize is the edge of one grid cell.
	CellSize = 32
	// SpriteSize is the edge of one packed sprite in the first column.
	SpriteSize = 16
	// SpritesPerCell is how many sprites share a first-column cell.
	SpritesPerCell = 4
	// NameCount is how many character names a sidecar should carry.
	NameCount = GridRows * SpritesPerCell
)

// spriteOffsets orders the 2x2 sprites within a first-column cell:
// top-left, top-right, bottom-left, bottom-right.
var spriteOffsets = [SpritesPerCell]image.Point{
	{0, 0},
	{SpriteSize, 0},
	{0, SpriteSize},
	{SpriteSize, SpriteSize},
}

// Extractor writes the pieces of a sheet into OutputDir.
type Extractor struct {
	OutputDir string
	Optimizer *Optimizer // nil disables the optipng pass
	Log       io.Writer  // nil discards progress output
}

// ExtractSheet slices one sheet and writes every sprite and portrait
// as an individual PNG.
func (x *Extractor) ExtractSheet(path string) error {
	img, err := decodeSheet(path)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	if bounds.Dx() != Size || bounds.Dy() != Size {
		x.logf("Warning: expected %dx%d pixels, got %dx%d", Size, Size, bounds.Dx(), bounds.Dy())
	}

	base := baseName(path)
	names, err := LoadNames(path)
	if err != nil {
		return err
	}
	if names == nil {
		x.logf("No character names file found (%s.txt), using default naming", base)
	} else if len(names) != NameCount {
		x.logf("Warning: expected %d names for %s, found %d", NameCount, base, len(names))
	}

	if err := os.MkdirAll(x.OutputDir, 0o755); err != nil {
		return err
	}

	x.logf("Processing %s...", path)
	var written []string

	for row := 0; row < GridRows; row++ {
		for i, off := range spriteOffsets {
			r := image.Rect(off.X, row*CellSize+off.Y, off.X+SpriteSize, row*CellSize+off.Y+SpriteSize)
			slot := row*SpritesPerCell + i
			name := spriteFileName(base, names, slot, row, i+1)
			out, err := x.savePiece(img, r, name)
			if err != nil {
				return err
			}
			written = append(written, out)
		}
	}

	for row := 0; row < GridRows; row++ {
		for col := 1; col < GridCols; col++ {
			r := image.Rect(col*CellSize, row*CellSize, (col+1)*CellSize, (row+1)*CellSize)
			slot := row*(GridCols-1) + (col - 1)
			name := portraitFileName(base, names, slot, row, col)
			out, err := x.savePiece(img, r, name)
			if err != nil {
				return err
			}
			written = append(written, out)
		}
	}

	if x.Optimizer != nil && len(written) > 0 {
		x.logf("Optimizing %d files with optipng...", len(written))
		for _, file := range written {
			x.Optimizer.Optimize(file)
		}
	}

	x.logf("Extraction complete for %s", path)
	return nil
}

func spriteFileName(base string, names []string, slot, row, n int) string {
	if slot < len(names) {
		return SanitizeName(names[slot]) + "face.png"
	}
	return fmt.Sprintf("%s_row%d_sprite%d.png", base, row, n)
}

func portraitFileName(base string, names []string, slot, row, col int) string {
	if slot < len(names) {
		return SanitizeName(names[slot]) + ".png"
	}
	return fmt.Sprintf("%s_row%d_sprite%d_portrait.png", base, row, col)
}

func (x *Extractor) savePiece(img *image.NRGBA, r image.Rectangle, name string) (string, error) {
	path := filepath.Join(x.OutputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img.SubImage(r)); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	x.logf("  Saved: %s", name)
	return path, nil
}

func (x *Extractor) logf(format string, args ...any) {
	if x.Log == nil {
		return
	}
	fmt.Fprintf(x.Log, format+"\n", args...)
}

func decodeSheet(path string) (*image.NRGBA, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return nil, fmt.Errorf("%s: webp sheets are not supported natively; use `chress-sprites run`", filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	nrgba := image.NewNRGBA(img.Bounds())
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return nrgba, nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// sheetExts are the formats a workspace sheet may arrive in. webp is
// discoverable but only the Python script can decode it.
var sheetExts = map[string]bool{
	".png":  true,
	".webp": true,
	".jpg":  true,
}

// Find lists sheet files directly under dir matching the
// npc-sprites-* naming convention, sorted by name.
func Find(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var sheets []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "npc-sprites-") {
			continue
		}
		if !sheetExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		sheets = append(sheets, filepath.Join(dir, name))
	}
	sort.Strings(sheets)
	return sheets, nil
}
