package dictionary

import (
	"github.com/at-ishikawa/keytip/internal/content"
)

// Builder turns word nodes into a Mapping using per-class attribute specs.
type Builder struct {
	specs       ClassSpecs
	diagnostics Diagnostics
}

// NewBuilder returns a Builder. A nil diagnostics sink logs to slog.Default().
func NewBuilder(specs ClassSpecs, diagnostics Diagnostics) *Builder {
	if diagnostics == nil {
		diagnostics = NewLogDiagnostics(nil)
	}
	return &Builder{
		specs:       specs,
		diagnostics: diagnostics,
	}
}

// Build maps every node to a dictionary entry.
// Misconfigured nodes are reported to the diagnostics sink and skipped. Only structurally
// invalid input, a node without a class identifier, fails the whole build.
func (b *Builder) Build(nodes []content.WordNode) (*Mapping, error) {
	mapping := NewMapping()
	if len(nodes) == 0 {
		b.diagnostics.Record(Diagnostic{
			Severity: SeverityNotice,
			Err: NewError(KindConfiguration,
				"There are no nodes which match the dictionary settings. Please check the dictionary configuration"),
		})
		return mapping, nil
	}

	for _, node := range nodes {
		if node.ClassIdentifier == "" {
			return nil, NewError(KindConstruction, "node %d has no class identifier", node.ID)
		}
	}

	for _, node := range nodes {
		entry, err := b.entry(node)
		if err != nil {
			b.diagnostics.Record(Diagnostic{
				Severity: SeverityError,
				NodeID:   node.ID,
				Class:    node.ClassIdentifier,
				Err:      err,
			})
			continue
		}
		mapping.set(entry.Keyword, entry.Description)
	}
	return mapping, nil
}

func (b *Builder) entry(node content.WordNode) (Entry, *Error) {
	spec, ok := b.specs[node.ClassIdentifier]
	if !ok || !spec.Valid() {
		return Entry{}, NewError(KindConfiguration,
			"Class %q is not configured properly. Check the dictionary classes configuration", node.ClassIdentifier)
	}

	keyword := node.Name
	if spec.Keyword != "" {
		value, ok := node.Attribute(spec.Keyword)
		if !ok {
			return Entry{}, NewError(KindConfiguration,
				"Class %q doesn't contain attribute %q defined in the dictionary classes configuration. Keyword %q won't be used",
				node.ClassIdentifier, spec.Keyword, node.Name)
		}
		keyword = value
	}

	description, ok := node.Attribute(spec.Description)
	if !ok {
		return Entry{}, NewError(KindConfiguration,
			"Class %q doesn't contain attribute %q defined in the dictionary classes configuration. Keyword %q won't be used",
			node.ClassIdentifier, spec.Description, keyword)
	}

	return Entry{Keyword: keyword, Description: description}, nil
}
