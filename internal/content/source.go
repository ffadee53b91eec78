// Package content provides access to the content tree that dictionary words are read from.
package content

import (
	"context"
	"time"
)

//go:generate mockgen -source=source.go -destination=../mocks/content/mock_source.go -package=mock_content

// WordNode is a content node which may become a dictionary entry.
type WordNode struct {
	ID              int64             `yaml:"id" db:"id"`
	ParentID        int64             `yaml:"parent_id" db:"parent_id"`
	ClassIdentifier string            `yaml:"class" db:"class_identifier"`
	Name            string            `yaml:"name" db:"name"`
	Modified        time.Time         `yaml:"modified" db:"modified"`
	Attributes      map[string]string `yaml:"attributes" db:"-"`
}

// Attribute returns the raw value of the named attribute and whether the node has it.
func (n WordNode) Attribute(name string) (string, bool) {
	value, ok := n.Attributes[name]
	return value, ok
}

// Source is the content repository the dictionary is built from.
// All node lookups are restricted to descendants of parentIDs whose class is in classes.
type Source interface {
	ListNodes(ctx context.Context, parentIDs []int64, classes []string) ([]WordNode, error)
	// ModifiedSubnode returns the latest modification time of the node or any of its descendants.
	ModifiedSubnode(ctx context.Context, parentID int64) (time.Time, error)
	CountNodes(ctx context.Context, parentIDs []int64, classes []string) (int, error)
}
