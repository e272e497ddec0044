package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kotoba-dev/kotoba/internal/audio"
	"github.com/kotoba-dev/kotoba/internal/audioinfo"
	"github.com/kotoba-dev/kotoba/internal/markdown"
	"github.com/kotoba-dev/kotoba/internal/stt"
	"github.com/kotoba-dev/kotoba/internal/textstore"
	"github.com/kotoba-dev/kotoba/internal/tts"
)

func newSpeechCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speech",
		Short: "Synthesize, transcribe, record and analyze speech",
	}
	cmd.AddCommand(
		newSpeechSayCmd(),
		newSpeechTranscribeCmd(),
		newSpeechAnalyzeCmd(),
		newSpeechRecordCmd(),
	)
	return cmd
}

func newSpeechSayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "say [text]",
		Short: "Synthesize text to an audio file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSpeechSay,
	}
	cmd.Flags().StringP("file", "f", "", "Read the text from a file instead")
	cmd.Flags().StringP("out", "o", "", "Output audio path (default: <data>/audio/speech.mp3)")
	cmd.Flags().Bool("markdown", false, "Flatten Markdown formatting before synthesis")
	return cmd
}

func newSpeechTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <audio>",
		Short: "Transcribe an audio file to text",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpeechTranscribe,
	}
	cmd.Flags().StringP("reference", "r", "", "Reference transcript to score accuracy against")
	return cmd
}

func newSpeechAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <audio>",
		Short: "Report properties of an audio file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpeechAnalyze,
	}
	cmd.Flags().Bool("spectral", false, "Also compute spectral features (WAV only)")
	return cmd
}

func newSpeechRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record from the microphone to a WAV file",
		RunE:  runSpeechRecord,
	}
	cmd.Flags().DurationP("duration", "d", 5*time.Second, "Recording duration")
	cmd.Flags().StringP("out", "o", "", "Output WAV path (default: <data>/audio/recording.wav)")
	return cmd
}

func runSpeechSay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var text string
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		store := textstore.New(cfg.TextDir(), cfg.ProcessedDir())
		text, err = store.ReadFile(file)
		if err != nil {
			return err
		}
	} else if len(args) == 1 {
		text = args[0]
	} else {
		return fmt.Errorf("provide text as an argument or via --file")
	}

	if md, _ := cmd.Flags().GetBool("markdown"); md {
		text = markdown.CleanForSpeech(text)
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = filepath.Join(cfg.AudioDir(), "speech.mp3")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, err := tts.Speak(ctx, &cfg.TTS, text, outPath)
	if err != nil {
		return err
	}
	if outcome.Success {
		fmt.Printf("%s (%s)\n", outcome.ArtifactPath, outcome.EngineUsed)
	} else {
		fmt.Printf("Synthesis failed, placeholder written to %s\n", outcome.ArtifactPath)
		fmt.Println(outcome.Message)
	}
	return nil
}

func runSpeechTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rec, err := stt.New(&cfg.STT)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transcript, err := rec.Recognize(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(transcript)

	if ref, _ := cmd.Flags().GetString("reference"); ref != "" {
		r := stt.ComputeCER(ref, transcript)
		fmt.Printf("CER: %.2f%% (sub %d, ins %d, del %d over %d chars)\n",
			r.CER*100, r.Substitutions, r.Insertions, r.Deletions, r.RefChars)
	}
	return nil
}

func runSpeechAnalyze(cmd *cobra.Command, args []string) error {
	spectral, _ := cmd.Flags().GetBool("spectral")

	p, err := audioinfo.Analyze(args[0], spectral)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runSpeechRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = filepath.Join(cfg.AudioDir(), "recording.wav")
	}
	duration, _ := cmd.Flags().GetDuration("duration")

	recorder := audio.NewRecorder(cfg.Audio.SampleRate, cfg.Audio.Channels)
	defer recorder.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Recording for %s... (Ctrl+C to stop early)\n", duration)
	samples, err := recorder.Record(ctx, duration)
	if err != nil {
		return err
	}

	if err := audio.WriteWAV(outPath, samples, cfg.Audio.SampleRate, cfg.Audio.Channels); err != nil {
		return err
	}
	fmt.Printf("Saved %d samples to %s\n", len(samples), outPath)
	return nil
}
