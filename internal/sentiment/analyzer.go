// Package sentiment scores English sentences against the AFINN word list.
package sentiment

import (
	"bufio"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

//go:embed afinn.txt
var afinnList string

const (
	Negative = "negative"
	Neutral  = "neutral"
	Positive = "positive"

	// positiveThreshold is the score a sentence must exceed to count as positive.
	positiveThreshold = 0.33
)

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nor": {}, "none": {},
	"nobody": {}, "nothing": {}, "nowhere": {}, "cannot": {}, "can't": {},
	"don't": {}, "doesn't": {}, "didn't": {}, "isn't": {}, "wasn't": {},
	"aren't": {}, "won't": {}, "wouldn't": {}, "shouldn't": {},
}

// Result is the outcome of scoring one sentence.
type Result struct {
	Score     float64 `json:"sentimentScore"`
	Sentiment string  `json:"sentiment"`
}

// Analyzer looks words up first as written, then by their Porter2 stem.
type Analyzer struct {
	words map[string]int
	stems map[string]int
}

// NewAnalyzer builds an analyzer from the embedded AFINN list.
func NewAnalyzer() (*Analyzer, error) {
	return ParseLexicon(afinnList)
}

// ParseLexicon reads "word<TAB>score" lines; blank lines and lines starting
// with '#' are skipped. When several words share a stem the first one wins.
func ParseLexicon(src string) (*Analyzer, error) {
	a := &Analyzer{words: map[string]int{}, stems: map[string]int{}}
	sc := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		word, val, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("lexicon line %d: missing tab", line)
		}
		score, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		word = strings.ToLower(strings.TrimSpace(word))
		a.words[word] = score
		stem := english.Stem(word, false)
		if _, dup := a.stems[stem]; !dup {
			a.stems[stem] = score
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

// Score returns the summed valence of the space-separated tokens of sentence
// divided by the token count. A negation flips every later match.
func (a *Analyzer) Score(sentence string) float64 {
	tokens := strings.Split(sentence, " ")
	sum, negator := 0, 1
	for _, tok := range tokens {
		w := normalize(tok)
		if w == "" {
			continue
		}
		if _, ok := negations[w]; ok {
			negator = -1
			continue
		}
		if v, ok := a.lookup(w); ok {
			sum += negator * v
		}
	}
	return float64(sum) / float64(len(tokens))
}

// Analyze scores sentence and buckets it.
func (a *Analyzer) Analyze(sentence string) Result {
	score := a.Score(sentence)
	return Result{Score: score, Sentiment: Classify(score)}
}

// Classify maps a score to negative (< 0), positive (> 0.33) or neutral.
func Classify(score float64) string {
	switch {
	case score < 0:
		return Negative
	case score > positiveThreshold:
		return Positive
	default:
		return Neutral
	}
}

func (a *Analyzer) lookup(w string) (int, bool) {
	if v, ok := a.words[w]; ok {
		return v, true
	}
	v, ok := a.stems[english.Stem(w, false)]
	return v, ok
}

// normalize lowercases a token and strips surrounding punctuation, keeping
// inner apostrophes ("don't").
func normalize(tok string) string {
	return strings.TrimFunc(strings.ToLower(tok), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
