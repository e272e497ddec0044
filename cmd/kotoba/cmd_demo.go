package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kotoba-dev/kotoba/internal/audioinfo"
	"github.com/kotoba-dev/kotoba/internal/markdown"
	"github.com/kotoba-dev/kotoba/internal/phonetics"
	"github.com/kotoba-dev/kotoba/internal/textstore"
	"github.com/kotoba-dev/kotoba/internal/tts"
)

const demoDocument = `# 日本語処理デモ

## 概要

このドキュメントはデモ用のサンプルです。

- テキスト抽出
- 音声合成
- 音声分析

1. 構造を抽出する
2. 読み上げ用に変換する
3. 音声を合成する

` + "```go" + `
fmt.Println("こんにちは")
` + "```" + `
`

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the full pipeline on a built-in sample document",
		RunE:  runDemo,
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println("=== Markdown structure ===")
	s := markdown.Extract(demoDocument)
	for _, h := range s.Headers {
		fmt.Printf("H%d %s\n", h.Level, h.Text)
	}
	fmt.Printf("%d bullet items, %d numbered items, %d code blocks\n",
		len(s.BulletItems), len(s.NumberedItems), len(s.CodeBlocks))

	store := textstore.New(cfg.TextDir(), cfg.ProcessedDir())
	exported, err := store.ExportJSON(s, "demo_structure.json")
	if err != nil {
		return err
	}
	fmt.Printf("Structure exported to %s\n", exported)

	fmt.Println("\n=== Phonetic conversion ===")
	conv, err := phonetics.NewConverter()
	if err != nil {
		return err
	}
	sample := s.Headers[0].Text
	fmt.Printf("%s\n  katakana: %s\n  hiragana: %s\n  romaji:   %s\n",
		sample, conv.ToKatakana(sample), conv.ToHiragana(sample), conv.ToRomaji(sample))

	fmt.Println("\n=== Speech synthesis ===")
	speech := markdown.CleanForSpeech(demoDocument)
	outPath := filepath.Join(cfg.AudioDir(), "demo.mp3")
	if err := os.MkdirAll(cfg.AudioDir(), 0755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, err := tts.Speak(ctx, &cfg.TTS, speech, outPath)
	if err != nil {
		return err
	}
	if outcome.Success {
		fmt.Printf("%s (%s)\n", outcome.ArtifactPath, outcome.EngineUsed)
	} else {
		fmt.Printf("All engines failed, placeholder written to %s\n", outcome.ArtifactPath)
	}

	fmt.Println("\n=== Audio analysis ===")
	p, err := audioinfo.Analyze(outcome.ArtifactPath, false)
	if err != nil {
		return err
	}
	if p.IsPlaceholder {
		fmt.Printf("Placeholder artifact, transcript of %d chars\n", p.TranscriptChars)
	} else {
		fmt.Printf("%s: %d bytes, %.2fs, %d Hz, %d channel(s)\n",
			p.Path, p.SizeBytes, p.DurationSeconds, p.FrameRate, p.Channels)
	}
	return nil
}
