package sheet

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeTestSheet writes a 160x160 sheet whose pixels encode their own
// coordinates (R=x, G=y), so crops can be verified by color.
func writeTestSheet(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestExtractSheetDefaultNaming(t *testing.T) {
	dir := t.TempDir()
	sheetPath := filepath.Join(dir, "npc-sprites-page-1.png")
	writeTestSheet(t, sheetPath)
	outDir := filepath.Join(dir, "out")

	x := &Extractor{OutputDir: outDir}
	if err := x.ExtractSheet(sheetPath); err != nil {
		t.Fatalf("ExtractSheet: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	// 20 sprites + 20 portraits.
	if len(entries) != 40 {
		t.Fatalf("wrote %d files, want 40", len(entries))
	}

	// Sprite 3 of row 2 sits at cell (0, 64) offset (0, 16).
	sprite := readPNG(t, filepath.Join(outDir, "npc-sprites-page-1_row2_sprite3.png"))
	if got := sprite.Bounds(); got.Dx() != SpriteSize || got.Dy() != SpriteSize {
		t.Fatalf("sprite bounds = %v, want %dx%d", got, SpriteSize, SpriteSize)
	}
	min := sprite.Bounds().Min
	r, g, _, _ := sprite.At(min.X, min.Y).RGBA()
	if r>>8 != 0 || g>>8 != 80 {
		t.Fatalf("sprite origin pixel = (%d,%d), want (0,80)", r>>8, g>>8)
	}

	// Portrait for row 1, column 3 sits at (96, 32).
	portrait := readPNG(t, filepath.Join(outDir, "npc-sprites-page-1_row1_sprite3_portrait.png"))
	if got := portrait.Bounds(); got.Dx() != CellSize || got.Dy() != CellSize {
		t.Fatalf("portrait bounds = %v, want %dx%d", got, CellSize, CellSize)
	}
	min = portrait.Bounds().Min
	r, g, _, _ = portrait.At(min.X, min.Y).RGBA()
	if r>>8 != 96 || g>>8 != 32 {
		t.Fatalf("portrait origin pixel = (%d,%d), want (96,32)", r>>8, g>>8)
	}
}

func TestExtractSheetNamedOutputs(t *testing.T) {
	dir := t.TempDir()
	sheetPath := filepath.Join(dir, "npc-sprites-page-1.png")
	writeTestSheet(t, sheetPath)

	names := make([]string, 0, NameCount)
	for i := 0; i < NameCount; i++ {
		names = append(names, "Char "+string(rune('A'+i)))
	}
	sidecar := strings.Join(names, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "npc-sprites-page-1.txt"), []byte(sidecar), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	x := &Extractor{OutputDir: outDir}
	if err := x.ExtractSheet(sheetPath); err != nil {
		t.Fatalf("ExtractSheet: %v", err)
	}

	// First slot gets both a face sprite and a portrait.
	for _, want := range []string{"Char_Aface.png", "Char_A.png", "Char_Tface.png", "Char_T.png"} {
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Errorf("missing expected output %s: %v", want, err)
		}
	}
}

func TestExtractSheetShortNameListFallsBack(t *testing.T) {
	dir := t.TempDir()
	sheetPath := filepath.Join(dir, "npc-sprites-page-1.png")
	writeTestSheet(t, sheetPath)
	if err := os.WriteFile(filepath.Join(dir, "npc-sprites-page-1.txt"), []byte("Mira\nBren\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	var log bytes.Buffer
	x := &Extractor{OutputDir: outDir, Log: &log}
	if err := x.ExtractSheet(sheetPath); err != nil {
		t.Fatalf("ExtractSheet: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "Miraface.png")); err != nil {
		t.Error("named sprite for first slot missing")
	}
	if _, err := os.Stat(filepath.Join(outDir, "npc-sprites-page-1_row0_sprite3.png")); err != nil {
		t.Error("default-named sprite for unnamed slot missing")
	}
	if !strings.Contains(log.String(), "expected 20 names") {
		t.Errorf("missing short-list warning in log:\n%s", log.String())
	}
}

func TestExtractSheetRejectsWebp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "npc-sprites-page-1.webp")
	if err := os.WriteFile(path, []byte("not really webp"), 0o644); err != nil {
		t.Fatal(err)
	}
	x := &Extractor{OutputDir: filepath.Join(dir, "out")}
	err := x.ExtractSheet(path)
	if err == nil || !strings.Contains(err.Error(), "webp") {
		t.Fatalf("err = %v, want webp rejection", err)
	}
}

func TestFindMatchesConvention(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"npc-sprites-page-2.png",
		"npc-sprites-page-1.png",
		"npc-sprites-extra.jpg",
		"npc-sprites-wide.webp",
		"npc-sprites-page-1.txt",
		"other-sprites.png",
		"readme.md",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "npc-sprites-dir.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := []string{
		filepath.Join(dir, "npc-sprites-extra.jpg"),
		filepath.Join(dir, "npc-sprites-page-1.png"),
		filepath.Join(dir, "npc-sprites-page-2.png"),
		filepath.Join(dir, "npc-sprites-wide.webp"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Find = %v, want %v", got, want)
	}
}
