package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kotoba-dev/kotoba/internal/markdown"
	"github.com/kotoba-dev/kotoba/internal/phonetics"
	"github.com/kotoba-dev/kotoba/internal/textstore"
)

func newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Read, analyze and convert Japanese text",
	}
	cmd.AddCommand(
		newTextReadCmd(),
		newTextMarkdownCmd(),
		newTextConvertCmd(),
	)
	return cmd
}

func newTextReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <file>",
		Short: "Print a text file from the data directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runTextRead,
	}
}

func newTextMarkdownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markdown <file>",
		Short: "Extract structure from a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTextMarkdown,
	}
	cmd.Flags().Bool("export", false, "Export the structure as JSON to the processed dir")
	cmd.Flags().Bool("clean", false, "Print the text flattened for speech instead")
	return cmd
}

func newTextConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <text>",
		Short: "Convert Japanese text between writing systems",
		Args:  cobra.ExactArgs(1),
		RunE:  runTextConvert,
	}
	cmd.Flags().StringP("to", "t", "katakana", "Target form: hiragana, katakana or romaji")
	cmd.Flags().Bool("tokens", false, "Print morphological tokens as JSON instead")
	return cmd
}

func runTextRead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := textstore.New(cfg.TextDir(), cfg.ProcessedDir())
	content, err := store.ReadFile(args[0])
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

func runTextMarkdown(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := textstore.New(cfg.TextDir(), cfg.ProcessedDir())
	content, err := store.ReadFile(args[0])
	if err != nil {
		return err
	}

	if clean, _ := cmd.Flags().GetBool("clean"); clean {
		fmt.Println(markdown.CleanForSpeech(content))
		return nil
	}

	s := markdown.Extract(content)
	fmt.Printf("Headers:        %d\n", len(s.Headers))
	for _, h := range s.Headers {
		fmt.Printf("  H%d %s\n", h.Level, h.Text)
	}
	fmt.Printf("Bullet items:   %d\n", len(s.BulletItems))
	fmt.Printf("Numbered items: %d\n", len(s.NumberedItems))
	fmt.Printf("Code blocks:    %d\n", len(s.CodeBlocks))

	if export, _ := cmd.Flags().GetBool("export"); export {
		path, err := store.ExportJSON(s, args[0]+".json")
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
	}
	return nil
}

func runTextConvert(cmd *cobra.Command, args []string) error {
	conv, err := phonetics.NewConverter()
	if err != nil {
		return err
	}
	text := args[0]

	if tokens, _ := cmd.Flags().GetBool("tokens"); tokens {
		out, err := json.MarshalIndent(conv.Tokenize(text), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	to, _ := cmd.Flags().GetString("to")
	switch to {
	case "hiragana":
		fmt.Println(conv.ToHiragana(text))
	case "katakana":
		fmt.Println(conv.ToKatakana(text))
	case "romaji":
		fmt.Println(conv.ToRomaji(text))
	default:
		return fmt.Errorf("unknown target form %q (supported: hiragana, katakana, romaji)", to)
	}
	return nil
}
