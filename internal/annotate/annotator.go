// Package annotate wraps dictionary keywords found in HTML text with tooltip markup.
package annotate

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/at-ishikawa/keytip/internal/dictionary"
)

//go:generate mockgen -source=annotator.go -destination=../mocks/annotate/mock_renderer.go -package=mock_annotate

// TooltipRenderer renders the markup which replaces a matched term.
// term is the matched text as it appears in the document.
type TooltipRenderer interface {
	Render(term, description string) (string, error)
}

// Annotator replaces keyword occurrences in the text nodes of an HTML document.
//
// Every match of a keyword inside a text node is replaced, each text node independently.
// Annotating twice is not idempotent: a keyword in rendered tooltip text is wrapped again.
type Annotator struct {
	renderer TooltipRenderer
	logger   *slog.Logger
}

type Option func(*Annotator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Annotator) {
		a.logger = logger
	}
}

func New(renderer TooltipRenderer, opts ...Option) *Annotator {
	a := &Annotator{
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type pattern struct {
	keyword     string
	description string
	re          *regexp.Regexp
}

// segment is a piece of a text node, either plain text or rendered tooltip markup.
type segment struct {
	text     string
	isMarkup bool
}

// Annotate returns input with every dictionary keyword in text nodes, outside of elements
// named in omitTags, wrapped in tooltip markup. Malformed markup is parsed leniently.
// The input is returned unchanged when nothing matched or it could not be processed.
func (a *Annotator) Annotate(input string, mapping *dictionary.Mapping, caseSensitive bool, omitTags []string) string {
	patterns := a.compilePatterns(mapping, caseSensitive)
	if len(patterns) == 0 || strings.TrimSpace(input) == "" {
		return input
	}

	root, isDocument, err := parse(input)
	if err != nil {
		a.logger.Warn("failed to parse HTML, leaving it unannotated", slog.Any("error", err))
		return input
	}

	changed := false
	for _, node := range textNodes(root, tagSet(omitTags)) {
		if a.annotateTextNode(node, patterns) {
			changed = true
		}
	}
	if !changed {
		return input
	}

	output, err := render(root, isDocument)
	if err != nil {
		a.logger.Warn("failed to render annotated HTML", slog.Any("error", err))
		return input
	}
	return output
}

func (a *Annotator) compilePatterns(mapping *dictionary.Mapping, caseSensitive bool) []pattern {
	entries := mapping.Entries()
	patterns := make([]pattern, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Keyword) == "" {
			continue
		}
		expr := regexp.QuoteMeta(entry.Keyword)
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			a.logger.Warn("skipping a keyword which cannot be matched",
				slog.String("keyword", entry.Keyword),
				slog.Any("error", err),
			)
			continue
		}
		patterns = append(patterns, pattern{
			keyword:     entry.Keyword,
			description: entry.Description,
			re:          re,
		})
	}
	return patterns
}

func looksLikeDocument(input string) bool {
	head := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

var firstTagPattern = regexp.MustCompile(`^\s*<([A-Za-z][A-Za-z0-9]*)`)

// fragmentContexts maps the first tag of a fragment to the element it must be parsed in.
// Table parts parsed in a <body> lose their structure.
var fragmentContexts = map[string]atom.Atom{
	"tr":       atom.Tbody,
	"td":       atom.Tr,
	"th":       atom.Tr,
	"tbody":    atom.Table,
	"thead":    atom.Table,
	"tfoot":    atom.Table,
	"caption":  atom.Table,
	"colgroup": atom.Table,
	"col":      atom.Colgroup,
}

func fragmentContext(input string) *html.Node {
	contextAtom := atom.Body
	if m := firstTagPattern.FindStringSubmatch(input); m != nil {
		if a, ok := fragmentContexts[strings.ToLower(m[1])]; ok {
			contextAtom = a
		}
	}
	return &html.Node{Type: html.ElementNode, Data: contextAtom.String(), DataAtom: contextAtom}
}

// parse returns the root to walk. Fragments are attached to a detached context element
// so every text node has an element parent.
func parse(input string) (*html.Node, bool, error) {
	if looksLikeDocument(input) {
		doc, err := html.Parse(strings.NewReader(input))
		if err != nil {
			return nil, false, fmt.Errorf("html.Parse > %w", err)
		}
		return doc, true, nil
	}

	root := fragmentContext(input)
	nodes, err := html.ParseFragment(strings.NewReader(input), root)
	if err != nil {
		return nil, false, fmt.Errorf("html.ParseFragment > %w", err)
	}
	for _, node := range nodes {
		root.AppendChild(node)
	}
	return root, false, nil
}

func render(root *html.Node, isDocument bool) (string, error) {
	var buf bytes.Buffer
	if isDocument {
		if err := writeNode(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if err := writeNode(&buf, child); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}
	return set
}

// textNodes returns the text nodes under root in document order, skipping omitted
// elements and everything below them.
func textNodes(root *html.Node, omit map[string]struct{}) []*html.Node {
	var nodes []*html.Node
	stack := []*html.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Type {
		case html.TextNode:
			nodes = append(nodes, node)
			continue
		case html.ElementNode:
			if _, ok := omit[node.Data]; ok {
				continue
			}
		case html.DocumentNode:
		default:
			continue
		}

		for child := node.LastChild; child != nil; child = child.PrevSibling {
			stack = append(stack, child)
		}
	}
	return nodes
}

// annotateTextNode replaces node with text and markup nodes and reports whether anything matched.
func (a *Annotator) annotateTextNode(node *html.Node, patterns []pattern) bool {
	parent := node.Parent
	if parent == nil || parent.Type != html.ElementNode {
		return false
	}

	segments := []segment{{text: node.Data}}
	changed := false
	for _, p := range patterns {
		var matched bool
		segments, matched = a.apply(p, segments)
		changed = changed || matched
	}
	if !changed {
		return false
	}

	for _, s := range segments {
		if !s.isMarkup {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: s.text}, node)
			continue
		}
		fragment, err := html.ParseFragment(strings.NewReader(s.text), parent)
		if err != nil {
			a.logger.Warn("failed to parse tooltip markup", slog.Any("error", err))
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: s.text}, node)
			continue
		}
		for _, child := range fragment {
			parent.InsertBefore(child, node)
		}
	}
	parent.RemoveChild(node)
	return true
}

// apply splits the plain text segments on every match of p. Markup segments are kept as is.
func (a *Annotator) apply(p pattern, segments []segment) ([]segment, bool) {
	matched := false
	result := make([]segment, 0, len(segments))
	for _, s := range segments {
		if s.isMarkup {
			result = append(result, s)
			continue
		}
		matches := findWords(p.re, s.text)
		if matches == nil {
			result = append(result, s)
			continue
		}

		last := 0
		for _, m := range matches {
			term := s.text[m[0]:m[1]]
			markup, err := a.renderer.Render(term, p.description)
			if err != nil {
				a.logger.Warn("failed to render a tooltip",
					slog.String("keyword", p.keyword),
					slog.Any("error", err),
				)
				continue
			}
			if m[0] > last {
				result = append(result, segment{text: s.text[last:m[0]]})
			}
			result = append(result, segment{text: markup, isMarkup: true})
			last = m[1]
			matched = true
		}
		if last < len(s.text) {
			result = append(result, segment{text: s.text[last:]})
		}
	}
	return result, matched
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

// findWords returns the matches of re which are whole words: neither the rune before nor
// the rune after a match is a letter, digit, mark or underscore.
func findWords(re *regexp.Regexp, text string) [][]int {
	var matches [][]int
	for offset := 0; offset < len(text); {
		loc := re.FindStringIndex(text[offset:])
		if loc == nil || loc[0] == loc[1] {
			break
		}
		start, end := offset+loc[0], offset+loc[1]

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			matches = append(matches, []int{start, end})
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return matches
}
