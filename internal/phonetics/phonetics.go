// Package phonetics converts Japanese text to phonetic forms (hiragana,
// katakana, romaji) and exposes morphological tokenization. All linguistic
// work is delegated to the kagome tokenizer and the kana conversion library;
// this package only stitches token readings together.
package phonetics

import (
	"fmt"
	"strings"

	"github.com/gojp/kana"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one morphological unit of the input text.
type Token struct {
	Surface      string `json:"surface"`
	BaseForm     string `json:"base_form"`
	Reading      string `json:"reading"` // katakana
	PartOfSpeech string `json:"part_of_speech"`
}

// Converter turns Japanese text into phonetic forms. It holds a kagome
// tokenizer built once at construction; conversion itself never fails.
type Converter struct {
	t *tokenizer.Tokenizer
}

// NewConverter builds a converter backed by the bundled IPA dictionary.
func NewConverter() (*Converter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("phonetics: building tokenizer: %w", err)
	}
	return &Converter{t: t}, nil
}

// ToKatakana converts text to its katakana reading. Tokens the dictionary
// has no reading for (latin words, unknown symbols) keep their surface form.
func (c *Converter) ToKatakana(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	for _, tok := range c.t.Tokenize(text) {
		if r, ok := tok.Reading(); ok && r != "" && r != "*" {
			b.WriteString(r)
		} else {
			b.WriteString(tok.Surface)
		}
	}
	return b.String()
}

// ToHiragana converts text to hiragana by routing the katakana reading
// through romaji, both conversions done by the kana library.
func (c *Converter) ToHiragana(text string) string {
	if text == "" {
		return ""
	}
	return kana.RomajiToHiragana(kana.KanaToRomaji(c.ToKatakana(text)))
}

// ToRomaji converts text to Hepburn romaji.
func (c *Converter) ToRomaji(text string) string {
	if text == "" {
		return ""
	}
	return kana.KanaToRomaji(c.ToKatakana(text))
}

// Tokenize splits text into morphological tokens with their base form,
// reading, and coarse part of speech.
func (c *Converter) Tokenize(text string) []Token {
	if text == "" {
		return []Token{}
	}

	raw := c.t.Tokenize(text)
	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		out := Token{
			Surface:  tok.Surface,
			BaseForm: tok.Surface,
			Reading:  tok.Surface,
		}
		if b, ok := tok.BaseForm(); ok && b != "*" {
			out.BaseForm = b
		}
		if r, ok := tok.Reading(); ok && r != "*" {
			out.Reading = r
		}
		if pos := tok.POS(); len(pos) > 0 {
			out.PartOfSpeech = pos[0]
		}
		tokens = append(tokens, out)
	}
	return tokens
}
