package tts

import (
	"context"
	"fmt"

	"github.com/kotoba-dev/kotoba/internal/config"
)

// NewEngine creates a single engine by name from config.
func NewEngine(name string, cfg *config.TTSConfig) (Engine, error) {
	switch name {
	case "gtts":
		return NewGTTSEngine(cfg.Language), nil
	case "googlecloud":
		return NewCloudTTSEngine(cfg.GoogleAPIKey, cfg.Language), nil
	case "openjtalk":
		return NewOpenJTalkEngine(cfg.OpenJTalk.Binary, cfg.OpenJTalk.Dictionary, cfg.OpenJTalk.Voice), nil
	default:
		return nil, fmt.Errorf("tts: unknown engine %q (supported: gtts, googlecloud, openjtalk)", name)
	}
}

// FromConfig instantiates the configured engines and returns the selector
// candidate list alongside the engines by name. Disabled engines are skipped;
// enabled-but-unavailable ones become unavailable candidates so the outcome
// message can account for them.
func FromConfig(cfg *config.TTSConfig) ([]Candidate, map[string]Engine, error) {
	candidates := make([]Candidate, 0, len(cfg.Engines))
	engines := make(map[string]Engine, len(cfg.Engines))

	for _, ec := range cfg.Engines {
		if !ec.Enabled {
			continue
		}
		eng, err := NewEngine(ec.Name, cfg)
		if err != nil {
			return nil, nil, err
		}
		engines[ec.Name] = eng
		candidates = append(candidates, Candidate{
			Name:      ec.Name,
			Available: eng.Available(),
			Priority:  ec.Priority,
		})
	}

	return candidates, engines, nil
}

// Speak synthesizes text to outPath using the configured engine order,
// falling back through engines and finally to a placeholder artifact.
func Speak(ctx context.Context, cfg *config.TTSConfig, text, outPath string) (Outcome, error) {
	candidates, engines, err := FromConfig(cfg)
	if err != nil {
		return Outcome{}, err
	}

	fn := func(name, text string) (string, error) {
		return engines[name].Synthesize(ctx, text, outPath)
	}

	return Synthesize(text, outPath, candidates, fn)
}
