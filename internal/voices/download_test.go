package voices

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// makeTarGz builds an in-memory gzipped tarball from name→content pairs.
func makeTarGz(t *testing.T, files map[string]string) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		hdr := &tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestExtractTarGz(t *testing.T) {
	destDir := t.TempDir()
	archive := makeTarGz(t, map[string]string{
		"dic/sys.dic":     "binary-ish",
		"dic/unidic.conf": "config",
	})

	if err := extractTarGz(archive, destDir); err != nil {
		t.Fatalf("extractTarGz() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(destDir, "dic", "sys.dic"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(got) != "binary-ish" {
		t.Errorf("extracted content = %q, want %q", got, "binary-ish")
	}
}

func TestExtractTarGzRejectsEscape(t *testing.T) {
	destDir := t.TempDir()
	archive := makeTarGz(t, map[string]string{
		"../escape.txt": "nope",
	})

	if err := extractTarGz(archive, destDir); err == nil {
		t.Error("extractTarGz() error = nil for path traversal entry")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(destDir), "escape.txt")); err == nil {
		t.Error("traversal entry was written outside the destination")
	}
}

func TestExtractTarGzBadStream(t *testing.T) {
	if err := extractTarGz(bytes.NewReader([]byte("not gzip")), t.TempDir()); err == nil {
		t.Error("extractTarGz() error = nil for invalid gzip stream")
	}
}

func TestProgressWriterPassesThrough(t *testing.T) {
	var out bytes.Buffer
	pw := &progressWriter{writer: &out, total: 10, label: "test"}

	n, err := pw.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 5 {
		t.Errorf("Write() n = %d, want 5", n)
	}
	if out.String() != "hello" {
		t.Errorf("underlying writer got %q, want %q", out.String(), "hello")
	}
	if pw.written != 5 {
		t.Errorf("written = %d, want 5", pw.written)
	}
}
