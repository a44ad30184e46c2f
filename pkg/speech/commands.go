package speech

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// MatchOption configures a MatchCommand call.
type MatchOption func(*matchOptions)

// WithPhoneticThreshold sets the minimum similarity score required for a
// phonetically-aligned command to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) MatchOption {
	return func(o *matchOptions) {
		o.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum similarity score required when no
// command aligns phonetically and matching falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) MatchOption {
	return func(o *matchOptions) {
		o.fuzzyThreshold = threshold
	}
}

type matchOptions struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// MatchCommand finds the command a transcript most likely meant. Speech
// recognition regularly mangles short imperatives ("next field" heard as
// "text yield"), so exact comparison is useless; instead each command is
// scored in two stages:
//
//  1. Double Metaphone codes are computed per word for the transcript and
//     the command. Commands sharing at least one code with the transcript
//     are phonetic candidates and accepted at the (lower) phonetic
//     threshold.
//  2. Commands with no phonetic overlap are accepted only at the (higher)
//     fuzzy threshold.
//
// Either way the score is the best Jaro-Winkler similarity across the
// full strings, the space-stripped strings, and all word pairs, which
// keeps multi-word commands robust when the recognizer splits or joins
// words. The highest-scoring acceptable command wins, phonetic candidates
// ranking above fuzzy-only ones.
//
// Returns the matched command, its score, and whether anything was
// acceptable. When matched is false the returned command is empty and the
// score is 0.
func MatchCommand(heard string, commands []string, opts ...MatchOption) (string, float64, bool) {
	options := matchOptions{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(&options)
	}

	heardLower := strings.ToLower(strings.TrimSpace(heard))
	if heardLower == "" || len(commands) == 0 {
		return "", 0, false
	}

	heardTokens := strings.Fields(heardLower)
	heardCodes := codesForTokens(heardTokens)

	type candidate struct {
		command  string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, cmd := range commands {
		cmdLower := strings.ToLower(strings.TrimSpace(cmd))
		if cmdLower == "" {
			continue
		}
		cmdTokens := strings.Fields(cmdLower)

		phonetic := codesOverlap(heardCodes, codesForTokens(cmdTokens))
		score := bestSimilarity(heardTokens, cmdTokens, heardLower, cmdLower)

		if phonetic {
			if score >= options.phoneticThreshold {
				if !best.phonetic || score > best.score {
					best = candidate{command: cmd, score: score, phonetic: true}
				}
			}
		} else if !best.phonetic {
			if score >= options.fuzzyThreshold && score > best.score {
				best = candidate{command: cmd, score: score, phonetic: false}
			}
		}
	}

	if best.command == "" {
		return "", 0, false
	}
	return best.command, best.score, true
}

// codesForTokens returns the union of the Double Metaphone codes of the
// given tokens. Tokens that produce no code (too short, no consonants)
// contribute nothing.
func codesForTokens(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

// codesOverlap reports whether the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestSimilarity is the highest Jaro-Winkler score between the transcript
// and a command across three comparisons: the full strings, the
// space-stripped strings, and every transcript-word/command-word pair.
func bestSimilarity(heardTokens, cmdTokens []string, heardFull, cmdFull string) float64 {
	score := matchr.JaroWinkler(heardFull, cmdFull, false)

	if len(heardTokens) > 1 || len(cmdTokens) > 1 {
		joined := matchr.JaroWinkler(strings.Join(heardTokens, ""), strings.Join(cmdTokens, ""), false)
		if joined > score {
			score = joined
		}
	}

	for _, ht := range heardTokens {
		for _, ct := range cmdTokens {
			if s := matchr.JaroWinkler(ht, ct, false); s > score {
				score = s
			}
		}
	}

	return score
}
