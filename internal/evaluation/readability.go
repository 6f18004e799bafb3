package evaluation

import (
	"strings"
	"unicode"
)

// FleschReadingEase computes the Flesch reading ease score for text.
// Higher is easier; patient-facing content targets 60 or above.
// Returns 0.0 for empty text.
func FleschReadingEase(text string) float64 {
	sentences, words, syllables := textCounts(text)
	if sentences == 0 || words == 0 {
		return 0.0
	}
	return 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*(float64(syllables)/float64(words))
}

// FleschKincaidGrade computes the Flesch-Kincaid grade level for text.
// Patient-facing content targets grade 8 or below. Returns 0.0 for empty text.
func FleschKincaidGrade(text string) float64 {
	sentences, words, syllables := textCounts(text)
	if sentences == 0 || words == 0 {
		return 0.0
	}
	return 0.39*(float64(words)/float64(sentences)) + 11.8*(float64(syllables)/float64(words)) - 15.59
}

func textCounts(text string) (sentences, words, syllables int) {
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}

	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		words++
		syllables += countSyllables(word)
	}

	if sentences == 0 && words > 0 {
		sentences = 1
	}
	return sentences, words, syllables
}

// countSyllables approximates English syllable count by vowel groups
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	// Trailing silent e
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
