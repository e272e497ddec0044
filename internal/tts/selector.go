package tts

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Synthesize tries each available candidate in priority order until one
// produces an artifact. Candidate failures are collected, not propagated;
// if every candidate is unavailable or fails, a placeholder artifact is
// written at outPath and the Outcome reports Success=false.
//
// The returned error is non-nil only when writing the placeholder itself
// fails, which is an environment problem outside this component's contract.
func Synthesize(text, outPath string, candidates []Candidate, fn SynthesizeFunc) (Outcome, error) {
	var usable []Candidate
	for _, c := range candidates {
		if c.Available {
			usable = append(usable, c)
		}
	}
	// Stable: candidates with equal priority keep their original order.
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Priority < usable[j].Priority
	})

	var failures []string
	for _, c := range usable {
		path, err := attempt(fn, c.Name, text)
		if err != nil {
			slog.Debug("tts engine failed", "engine", c.Name, "error", err)
			failures = append(failures, fmt.Sprintf("%s: %v", c.Name, err))
			continue
		}
		return Outcome{
			Success:      true,
			EngineUsed:   c.Name,
			ArtifactPath: path,
			Message:      "synthesized via " + c.Name,
		}, nil
	}

	msg := "no engines available"
	if len(failures) > 0 {
		msg = strings.Join(failures, "; ")
	}

	if err := WritePlaceholder(outPath, text); err != nil {
		return Outcome{}, fmt.Errorf("tts: writing placeholder: %w", err)
	}

	return Outcome{
		Success:      false,
		ArtifactPath: outPath,
		Message:      msg,
	}, nil
}

// attempt invokes fn once, converting a panic into an ordinary failure so a
// misbehaving engine cannot abort evaluation of the remaining candidates.
func attempt(fn SynthesizeFunc, name, text string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(name, text)
}
