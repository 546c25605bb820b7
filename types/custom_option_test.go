package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomOptionsDeduplicate(t *testing.T) {
	require.Equal(
		t,
		DictionaryItems{
			{Key: "b", Value: "0"},
			{Key: "a", Value: "1"},
		},
		DictionaryItems{
			{Key: "a", Value: "0"},
			{Key: "b", Value: "0"},
			{Key: "a", Value: "1"},
		}.Deduplicate(),
	)
}

func TestParseDictionaryItem(t *testing.T) {
	item, err := ParseDictionaryItem("preset=veryfast")
	require.NoError(t, err)
	require.Equal(t, DictionaryItem{Key: "preset", Value: "veryfast"}, item)

	item, err = ParseDictionaryItem("crf=")
	require.NoError(t, err)
	require.Equal(t, DictionaryItem{Key: "crf"}, item)

	_, err = ParseDictionaryItem("novalue")
	require.Error(t, err)
	_, err = ParseDictionaryItem("=x")
	require.Error(t, err)
}
