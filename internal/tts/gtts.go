package tts

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kotoba-dev/kotoba/internal/webapi"
)

const gttsEndpoint = "https://translate.google.com/translate_tts"

// The endpoint rejects long q parameters, so text is sent in chunks and the
// MP3 responses are concatenated (MPEG frames are self-delimiting).
const gttsMaxChunkRunes = 180

// GTTSEngine synthesizes speech through the unauthenticated Google Translate
// TTS endpoint. Output is always MP3: the requested extension is coerced and
// the actual path reported back.
type GTTSEngine struct {
	lang string
}

// NewGTTSEngine creates a gtts engine for the given language code (e.g. "ja").
func NewGTTSEngine(lang string) *GTTSEngine {
	if lang == "" {
		lang = "ja"
	}
	return &GTTSEngine{lang: lang}
}

func (g *GTTSEngine) Name() string { return "gtts" }

// Available is always true: the endpoint needs no credentials, and network
// failures surface as per-attempt errors instead.
func (g *GTTSEngine) Available() bool { return true }

func (g *GTTSEngine) Synthesize(ctx context.Context, text, outPath string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gtts: empty text")
	}

	mp3Path := withExt(outPath, ".mp3")
	if err := os.MkdirAll(filepath.Dir(mp3Path), 0755); err != nil {
		return "", fmt.Errorf("gtts: creating output dir: %w", err)
	}

	f, err := os.Create(mp3Path)
	if err != nil {
		return "", fmt.Errorf("gtts: creating output file: %w", err)
	}
	defer f.Close()

	for _, chunk := range splitChunks(text, gttsMaxChunkRunes) {
		if err := g.fetchChunk(ctx, chunk, f); err != nil {
			os.Remove(mp3Path)
			return "", err
		}
	}

	if err := WriteTranscript(mp3Path, text); err != nil {
		return "", fmt.Errorf("gtts: %w", err)
	}
	return mp3Path, nil
}

func (g *GTTSEngine) fetchChunk(ctx context.Context, chunk string, w io.Writer) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", g.lang)
	q.Set("q", chunk)

	body, err := webapi.GetRaw(ctx, gttsEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("gtts: %w", err)
	}
	defer body.Close()

	if _, err := io.Copy(w, body); err != nil {
		return fmt.Errorf("gtts: writing audio: %w", err)
	}
	return nil
}

// splitChunks breaks text into runs of at most max runes, preferring to cut
// after Japanese or Latin sentence punctuation.
func splitChunks(text string, max int) []string {
	runes := []rune(text)
	if len(runes) <= max {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + max
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := end
		for i := end; i > start; i-- {
			if isSentenceBreak(runes[i-1]) {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[start:cut]))
		start = cut
	}
	return chunks
}

func isSentenceBreak(r rune) bool {
	switch r {
	case '。', '、', '！', '？', '.', ',', '!', '?', '\n':
		return true
	}
	return false
}

// withExt replaces the extension of path with ext.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
