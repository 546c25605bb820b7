package types

import (
	"fmt"
	"strings"
)

// DictionaryItem is a key-value option passed as-is to FFmpeg (for example
// to an encoder).
type DictionaryItem struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}
type DictionaryItems []DictionaryItem

// Deduplicate keeps only the last value of each key, in the order those last
// values appear.
func (s DictionaryItems) Deduplicate() DictionaryItems {
	lastIdx := map[string]int{}
	for idx, item := range s {
		lastIdx[item.Key] = idx
	}
	result := make(DictionaryItems, 0, len(lastIdx))
	for idx, item := range s {
		if lastIdx[item.Key] != idx {
			continue
		}
		result = append(result, item)
	}
	return result
}

// ParseDictionaryItem parses "key=value".
func ParseDictionaryItem(s string) (DictionaryItem, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return DictionaryItem{}, fmt.Errorf("expected 'key=value', got %q", s)
	}
	return DictionaryItem{Key: k, Value: v}, nil
}
