package dictionary

import (
	"sort"
	"strings"
)

// Entry is a single keyword and its description. The description may contain markup.
type Entry struct {
	Keyword     string `json:"keyword"`
	Description string `json:"description"`
}

// Mapping is an ordered keyword -> description dictionary.
// It is only mutated while being built and is read-only afterwards.
type Mapping struct {
	keywords     []string
	descriptions map[string]string
}

// NewMapping returns a mapping with entries added in order. Later duplicates win.
func NewMapping(entries ...Entry) *Mapping {
	m := &Mapping{descriptions: make(map[string]string, len(entries))}
	for _, entry := range entries {
		m.set(entry.Keyword, entry.Description)
	}
	return m
}

// set keeps the position of the first insertion and the description of the last.
func (m *Mapping) set(keyword, description string) {
	if _, ok := m.descriptions[keyword]; !ok {
		m.keywords = append(m.keywords, keyword)
	}
	m.descriptions[keyword] = description
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keywords)
}

// Entries returns a copy of the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	entries := make([]Entry, 0, len(m.keywords))
	for _, keyword := range m.keywords {
		entries = append(entries, Entry{Keyword: keyword, Description: m.descriptions[keyword]})
	}
	return entries
}

// Lookup finds the description of keyword.
// A case-insensitive lookup returns the first entry in insertion order that matches.
func (m *Mapping) Lookup(keyword string, caseSensitive bool) (string, bool) {
	if m == nil {
		return "", false
	}
	if description, ok := m.descriptions[keyword]; ok {
		return description, true
	}
	if caseSensitive {
		return "", false
	}
	for _, k := range m.keywords {
		if strings.EqualFold(k, keyword) {
			return m.descriptions[k], true
		}
	}
	return "", false
}

// ClassAttributeSpec names the attributes a class provides its keyword and description from.
// An empty Keyword means the node name is used as the keyword.
type ClassAttributeSpec struct {
	Keyword     string
	Description string
}

// Valid reports whether a description attribute is named.
func (s ClassAttributeSpec) Valid() bool {
	return s.Description != ""
}

// ClassSpecs maps class identifiers to their attribute spec.
type ClassSpecs map[string]ClassAttributeSpec

// ParseClassSpecs parses "keyword_attribute;description_attribute" values.
// Entries without a description part are kept, so their class still takes part in the
// class filter, but they are reported by Invalid and every node of that class is skipped.
func ParseClassSpecs(raw map[string]string) ClassSpecs {
	specs := make(ClassSpecs, len(raw))
	for class, value := range raw {
		keyword, description, _ := strings.Cut(value, ";")
		specs[class] = ClassAttributeSpec{
			Keyword:     strings.TrimSpace(keyword),
			Description: strings.TrimSpace(description),
		}
	}
	return specs
}

// Classes returns the sorted class identifiers.
func (s ClassSpecs) Classes() []string {
	classes := make([]string, 0, len(s))
	for class := range s {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Invalid returns the sorted class identifiers whose spec has no description attribute.
func (s ClassSpecs) Invalid() []string {
	var invalid []string
	for class, spec := range s {
		if !spec.Valid() {
			invalid = append(invalid, class)
		}
	}
	sort.Strings(invalid)
	return invalid
}
