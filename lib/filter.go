package svn

import "strings"

// FilterText replaces every occurrence of each banned word in text with its
// replacement. Longer words are replaced first, so a word that contains
// another is caught whole.
func FilterText(text string, words map[string]string) string {
	for _, word := range longestFirst(words) {
		if word == "" {
			continue
		}
		text = strings.ReplaceAll(text, word, words[word])
	}
	return text
}
