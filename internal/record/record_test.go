package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/terrapixel/raster-chunker/internal/raster"
)

func writeRecord(t *testing.T, info raster.RecordInfo) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.rec")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create record: %v", err)
	}
	defer f.Close()
	if err := WriteHeader(f, info); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	return path
}

func TestReadInfo_RoundTrip(t *testing.T) {
	want := raster.RecordInfo{NumBands: 6, Width: 7281, Height: 6921}
	path := writeRecord(t, want)

	got, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadInfo_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.rec")
	if err := os.WriteFile(path, []byte("not a record header!"), 0o644); err != nil {
		t.Fatalf("failed to write junk: %v", err)
	}
	if _, err := ReadInfo(path); err == nil {
		t.Fatal("ReadInfo accepted a file with a bad magic")
	}
}

func TestReadInfo_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.rec")
	if err := os.WriteFile(path, []byte("RCH1"), 0o644); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	if _, err := ReadInfo(path); err == nil {
		t.Fatal("ReadInfo accepted a truncated header")
	}
}

func TestReadInfo_Missing(t *testing.T) {
	if _, err := ReadInfo(filepath.Join(t.TempDir(), "nope.rec")); err == nil {
		t.Fatal("ReadInfo accepted a missing file")
	}
}
