package nlu

import "strings"

// ContainsAny reports whether any phrase occurs in text, also inside
// longer words.
func ContainsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// HasWord reports whether any of words is a whole whitespace-separated
// token of text. Use it for short words ("hi", "yo") that would otherwise
// match inside longer ones.
func HasWord(text string, words ...string) bool {
	for _, tok := range strings.Fields(text) {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// ExtractAfter returns the trimmed text following the first occurrence of
// the first keyword (in argument order) present in text, or "".
func ExtractAfter(text string, keywords ...string) string {
	for _, kw := range keywords {
		if _, after, ok := strings.Cut(text, kw); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

// WordSet is a set of whole words to strip from a query.
type WordSet map[string]struct{}

func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// With returns a copy of s extended with words.
func (s WordSet) With(words ...string) WordSet {
	out := make(WordSet, len(s)+len(words))
	for w := range s {
		out[w] = struct{}{}
	}
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// ExtractQuery drops every token of text that is in remove and joins the
// rest with single spaces.
func ExtractQuery(text string, remove WordSet) string {
	toks := strings.Fields(text)
	kept := toks[:0]
	for _, t := range toks {
		if !remove.Has(t) {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// StripPhrases replaces every literal occurrence of each phrase with a
// space, in order, and collapses the remaining whitespace.
func StripPhrases(text string, phrases ...string) string {
	for _, p := range phrases {
		text = strings.ReplaceAll(text, p, " ")
	}
	return strings.Join(strings.Fields(text), " ")
}

// WordCount is the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
