package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClassSpecs(t *testing.T) {
	specs := ParseClassSpecs(map[string]string{
		"event":  "title;summary",
		"term":   ";description",
		"folder": "name",
		"spaced": " title ; body ",
	})

	assert.Equal(t, ClassSpecs{
		"event":  {Keyword: "title", Description: "summary"},
		"term":   {Keyword: "", Description: "description"},
		"folder": {Keyword: "name", Description: ""},
		"spaced": {Keyword: "title", Description: "body"},
	}, specs)
	assert.Equal(t, []string{"event", "folder", "spaced", "term"}, specs.Classes())
	assert.Equal(t, []string{"folder"}, specs.Invalid())
}

func TestMapping_Lookup(t *testing.T) {
	mapping := NewMapping(
		Entry{Keyword: "Fox", Description: "A wild animal"},
		Entry{Keyword: "owl", Description: "A bird"},
	)

	tests := []struct {
		name          string
		keyword       string
		caseSensitive bool
		want          string
		wantOK        bool
	}{
		{name: "exact match", keyword: "Fox", caseSensitive: true, want: "A wild animal", wantOK: true},
		{name: "case sensitive miss", keyword: "fox", caseSensitive: true},
		{name: "case insensitive hit", keyword: "FOX", caseSensitive: false, want: "A wild animal", wantOK: true},
		{name: "unknown", keyword: "cat", caseSensitive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mapping.Lookup(tt.keyword, tt.caseSensitive)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapping_NilIsEmpty(t *testing.T) {
	var mapping *Mapping
	assert.Equal(t, 0, mapping.Len())
	assert.Nil(t, mapping.Entries())
	_, ok := mapping.Lookup("Fox", false)
	assert.False(t, ok)
}

func TestError(t *testing.T) {
	err := WrapError(KindCache, assert.AnError, "write %s", "a.cache")

	assert.Equal(t, "cache error: write a.cache > "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorIs(t, err, &Error{Kind: KindCache})
	assert.NotErrorIs(t, err, &Error{Kind: KindLookup})
	assert.True(t, IsKind(err, KindCache))
	assert.False(t, IsKind(assert.AnError, KindCache))
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
