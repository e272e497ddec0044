// Package voices downloads the dictionary and voice assets that the local
// Open JTalk engine needs.
package voices

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/kotoba-dev/kotoba/internal/config"
)

const (
	dictURL  = "https://sourceforge.net/projects/open-jtalk/files/Dictionary/open_jtalk_dic-1.11/open_jtalk_dic_utf_8-1.11.tar.gz/download"
	dictName = "open_jtalk_dic_utf_8-1.11"

	voiceURL  = "https://github.com/icn-lab/htsvoice-tohoku-f01/raw/master/tohoku-f01-neutral.htsvoice"
	voiceName = "tohoku-f01-neutral.htsvoice"
)

// Dir returns the directory Open JTalk assets are installed into.
func Dir() string {
	return filepath.Join(config.DefaultDataDir(), "openjtalk")
}

// DictionaryPath returns the installed dictionary directory.
func DictionaryPath() string {
	return filepath.Join(Dir(), dictName)
}

// VoicePath returns the installed voice file.
func VoicePath() string {
	return filepath.Join(Dir(), voiceName)
}

// DownloadDictionary fetches and unpacks the Open JTalk UTF-8 dictionary.
// It shows download progress to stdout and is a no-op if the dictionary is
// already installed.
func DownloadDictionary() error {
	destDir := DictionaryPath()
	if _, err := os.Stat(filepath.Join(destDir, "sys.dic")); err == nil {
		fmt.Printf("  Dictionary already exists: %s\n", destDir)
		return nil
	}
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating voices dir: %w", err)
	}

	fmt.Printf("  Downloading Open JTalk dictionary...\n")
	fmt.Printf("  URL: %s\n", dictURL)

	resp, err := http.Get(dictURL) //nolint:gosec // URL is a compile-time constant
	if err != nil {
		return fmt.Errorf("downloading dictionary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	pr := &progressReader{
		reader: resp.Body,
		total:  resp.ContentLength,
		label:  dictName,
	}
	if err := extractTarGz(pr, Dir()); err != nil {
		return fmt.Errorf("unpacking dictionary: %w", err)
	}
	fmt.Printf("\n  Dictionary installed to %s\n", destDir)
	return nil
}

// DownloadVoice fetches the Tohoku-f01 HTS voice. It shows download progress
// to stdout and is a no-op if the voice is already installed.
func DownloadVoice() error {
	destPath := VoicePath()
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		fmt.Printf("  Voice already exists: %s (%.1f MB)\n", destPath, float64(info.Size())/(1024*1024))
		return nil
	}
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating voices dir: %w", err)
	}

	fmt.Printf("  Downloading HTS voice...\n")
	fmt.Printf("  URL: %s\n", voiceURL)

	resp, err := http.Get(voiceURL) //nolint:gosec // URL is a compile-time constant
	if err != nil {
		return fmt.Errorf("downloading voice: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	// Write to temp file first, then rename (atomic)
	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	pw := &progressWriter{
		writer: f,
		total:  resp.ContentLength,
		label:  voiceName,
	}

	written, err := io.Copy(pw, resp.Body)
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing voice file: %w", err)
	}
	fmt.Printf("\n  Downloaded %.1f MB\n", float64(written)/(1024*1024))

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving voice file: %w", err)
	}
	return nil
}

// DownloadAll fetches both the dictionary and the voice.
func DownloadAll() error {
	fmt.Println("[1/2] Dictionary:")
	if err := DownloadDictionary(); err != nil {
		return fmt.Errorf("dictionary download failed: %w", err)
	}
	fmt.Println()
	fmt.Println("[2/2] Voice:")
	if err := DownloadVoice(); err != nil {
		return fmt.Errorf("voice download failed: %w", err)
	}
	return nil
}

// extractTarGz unpacks a gzipped tarball into destDir. Entries that would
// escape destDir are rejected.
func extractTarGz(r io.Reader, destDir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		target := filepath.Join(destDir, filepath.Clean(hdr.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("tar entry escapes destination: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			f, err := os.Create(target)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil { //nolint:gosec // local archive with trusted origin
				f.Close()
				return err
			}
			f.Close()
		}
	}
}

// progressWriter wraps an io.Writer and prints download progress.
type progressWriter struct {
	writer  io.Writer
	total   int64
	written int64
	label   string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	printProgress(pw.label, pw.written, pw.total)
	return n, err
}

// progressReader wraps an io.Reader and prints download progress.
type progressReader struct {
	reader io.Reader
	total  int64
	read   int64
	label  string
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)
	printProgress(pr.label, pr.read, pr.total)
	return n, err
}

func printProgress(label string, done, total int64) {
	if total > 0 {
		pct := float64(done) / float64(total) * 100
		fmt.Printf("\r  %s: %.1f MB / %.1f MB (%.0f%%)",
			label,
			float64(done)/(1024*1024),
			float64(total)/(1024*1024),
			pct)
	} else {
		fmt.Printf("\r  %s: %.1f MB downloaded",
			label,
			float64(done)/(1024*1024))
	}
}
