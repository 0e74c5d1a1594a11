package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// stopWords are common Chinese function words dropped during keyword
// extraction. Bag labels in the wild mix Chinese and English freely.
var stopWords = map[string]struct{}{
	"的": {}, "了": {}, "在": {}, "是": {}, "我": {}, "有": {}, "和": {},
	"就": {}, "不": {}, "人": {}, "都": {}, "一": {}, "一个": {}, "上": {},
	"也": {}, "很": {}, "到": {}, "说": {}, "要": {}, "去": {}, "你": {},
	"会": {}, "着": {}, "没有": {}, "看": {}, "好": {}, "自己": {}, "这": {},
	"那": {},
}

// nonKeywordChars matches everything that is not a CJK ideograph, an
// ASCII letter/digit, or whitespace. Input is lowercased first, so
// a-z covers letters.
var nonKeywordChars = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}a-z0-9\s]`)

// Tokenize normalizes raw recognized or query text into keywords:
// lowercase, punctuation collapsed to spaces, whitespace split, then
// tokens shorter than 2 characters and stop words dropped. Order is
// preserved and duplicates are kept; repeated keywords count as
// repeated evidence downstream.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = nonKeywordChars.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}
