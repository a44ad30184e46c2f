package speech

import "strings"

// femaleNameHints are the lower-case name substrings that mark a voice as
// female-sounding on the platforms this was tuned against. Order is not
// significant; the scan order of the voice list is.
var femaleNameHints = []string{
	"female",
	"woman",
	"zira",  // Windows
	"hazel", // Windows
	"susan",
}

// ChooseFemaleVoice scans voices in platform order and returns the first
// female-sounding one: a voice whose lower-cased name contains one of the
// known hints, or whose reported gender is "female".
//
// When no voice qualifies, it falls back to the first Google voice for the
// language family of lang (the tag's primary subtag, e.g. "en" for
// "en-US"). The second return is false when neither pass finds a voice;
// that is an acceptable outcome, not an error.
func ChooseFemaleVoice(voices []Voice, lang string) (Voice, bool) {
	for _, v := range voices {
		name := strings.ToLower(v.Name)
		for _, hint := range femaleNameHints {
			if strings.Contains(name, hint) {
				return v, true
			}
		}
		if strings.EqualFold(v.Gender, "female") {
			return v, true
		}
	}

	// Fallback: a Google voice in the right language family.
	prefix := langFamily(lang)
	for _, v := range voices {
		if strings.HasPrefix(v.Lang, prefix) && strings.Contains(v.Name, "Google") {
			return v, true
		}
	}

	return Voice{}, false
}

// ConfigureUtterance builds the utterance for text in lang: the preferred
// voice when one exists, and always the fixed pitch and rate.
func ConfigureUtterance(text, lang string, voices []Voice) Utterance {
	u := Utterance{
		Text:  text,
		Lang:  lang,
		Pitch: UtterancePitch,
		Rate:  UtteranceRate,
	}
	if v, ok := ChooseFemaleVoice(voices, lang); ok {
		u.VoiceName = v.Name
	}
	return u
}

// langFamily returns the primary subtag of a BCP 47 tag ("en-US" → "en").
func langFamily(lang string) string {
	if i := strings.Index(lang, "-"); i >= 0 {
		return lang[:i]
	}
	return lang
}
