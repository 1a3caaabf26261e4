// Package similarity ranks free text against a corpus by Jaccard similarity
// over mixed-script tokens.
//
// CJK text becomes overlapping character bigrams; Latin text becomes
// lowercased words with stopwords and one-character words removed.
package similarity

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// Mode selects which scripts take part in tokenization.
type Mode string

const (
	Mixed Mode = "mixed"
	CJK   Mode = "zh"
	Latin Mode = "en"
)

// ParseMode maps a stored preference to a Mode, defaulting to Mixed.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case CJK, Latin:
		return Mode(s)
	}
	return Mixed
}

// Token caps.
const (
	maxLatinTokens = 500
	maxTokens      = 700
)

var (
	reURL     = regexp.MustCompile(`https?://\S+`)
	reControl = regexp.MustCompile(`[\x00-\x1f]`)
	rePunct   = regexp.MustCompile("[.,!?;:()\\[\\]{}<>\"'`~@#$%^&*_+=|\\\\/]")
	reSpace   = regexp.MustCompile(`[\s\p{Zs}\x{feff}\x{2028}\x{2029}]+`)
)

var stopwords = func() map[string]struct{} {
	words := strings.Fields(`the a an and or but if then so to of in on for with as at by
		is am are was were be been being it this that these those i me my mine you your yours
		we our ours they their theirs do did does done have has had having not no yes just
		really very`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopword reports whether w is in the closed stopword list.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// Normalize lowercases text and replaces URLs, control characters and
// ASCII punctuation with spaces, then collapses whitespace.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = reURL.ReplaceAllString(s, " ")
	s = reControl.ReplaceAllString(s, " ")
	s = rePunct.ReplaceAllString(s, " ")
	s = reSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0xF900 && r <= 0xFAFF)
}

// extractCJK keeps CJK characters, turning every other character into a
// space, and collapses the result.
func extractCJK(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if isCJK(r) {
			return r
		}
		return ' '
	}, s)
	return strings.TrimSpace(reSpace.ReplaceAllString(mapped, " "))
}

// cjkBigrams joins the CJK runs and slides a two-character window over
// them. Bigrams cross run boundaries.
func cjkBigrams(s string) []string {
	runes := []rune(reSpace.ReplaceAllString(s, ""))
	if len(runes) < 2 {
		if len(runes) == 1 {
			return []string{string(runes)}
		}
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}

func latinTokens(s string) []string {
	stripped := strings.Map(func(r rune) rune {
		if isCJK(r) {
			return ' '
		}
		return r
	}, s)

	var out []string
	for _, w := range strings.Split(stripped, " ") {
		// Length is in UTF-16 units, so a lone astral character counts as two.
		if w == "" || len(utf16.Encode([]rune(w))) <= 1 || IsStopword(w) {
			continue
		}
		out = append(out, w)
		if len(out) == maxLatinTokens {
			break
		}
	}
	return out
}

// Tokenize returns the tokens of text under mode. Duplicates are kept; the
// scorer collapses them.
func Tokenize(text string, mode Mode) []string {
	raw := Normalize(text)
	if raw == "" {
		return nil
	}

	var tokens []string
	if mode == Mixed || mode == CJK {
		tokens = append(tokens, cjkBigrams(extractCJK(raw))...)
	}
	if mode == Mixed || mode == Latin {
		tokens = append(tokens, latinTokens(raw)...)
	}
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}
	return tokens
}
