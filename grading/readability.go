package grading

import (
	"strings"
)

var vowels = "aeiouy"

// CountSyllables estimates the syllable count of a single word by counting
// vowel clusters, dropping a trailing silent e. Every word counts as at
// least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	previousWasVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !previousWasVowel {
			count++
		}
		previousWasVowel = isVowel
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}

// FleschKincaidGrade computes the Flesch-Kincaid grade level of text.
// Sentences are approximated by terminal punctuation counts, with a floor of
// one so fragments still score. Empty text scores 0.
func FleschKincaidGrade(text string) float64 {
	if text == "" {
		return 0.0
	}

	sentences := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	if sentences < 1 {
		sentences = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return 0.0
	}

	syllables := 0
	for _, word := range words {
		syllables += CountSyllables(word)
	}

	grade := 0.39*(float64(len(words))/float64(sentences)) +
		11.8*(float64(syllables)/float64(len(words))) - 15.59
	if grade < 0 {
		return 0.0
	}
	return grade
}
