package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"
)

// Tree is the YAML representation of a content tree. Nodes reference their parent by id.
type Tree struct {
	Nodes []WordNode `yaml:"nodes"`
}

// YAMLSource reads the content tree from a YAML file.
// The file is read on every call so edits show up in the next fingerprint.
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

type treeIndex struct {
	nodes    []WordNode
	byID     map[int64]int
	children map[int64][]int64
}

func (s *YAMLSource) load(ctx context.Context) (*treeIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := readYamlFile[Tree](s.path)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("readYamlFile > %w", err)
	}

	index := &treeIndex{
		nodes:    tree.Nodes,
		byID:     make(map[int64]int, len(tree.Nodes)),
		children: make(map[int64][]int64),
	}
	for i, node := range tree.Nodes {
		if _, ok := index.byID[node.ID]; ok {
			return nil, fmt.Errorf("duplicate node id %d in %s", node.ID, s.path)
		}
		index.byID[node.ID] = i
		index.children[node.ParentID] = append(index.children[node.ParentID], node.ID)
	}
	return index, nil
}

// descendants returns the ids below the parents, excluding the parents themselves.
func (index *treeIndex) descendants(parentIDs []int64) map[int64]struct{} {
	found := make(map[int64]struct{})
	queue := append([]int64(nil), parentIDs...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range index.children[id] {
			if _, ok := found[child]; ok {
				continue
			}
			found[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return found
}

func (index *treeIndex) matching(parentIDs []int64, classes []string) []WordNode {
	descendants := index.descendants(parentIDs)
	var nodes []WordNode
	for _, node := range index.nodes {
		if _, ok := descendants[node.ID]; !ok {
			continue
		}
		if !slices.Contains(classes, node.ClassIdentifier) {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func (s *YAMLSource) ListNodes(ctx context.Context, parentIDs []int64, classes []string) ([]WordNode, error) {
	index, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return index.matching(parentIDs, classes), nil
}

func (s *YAMLSource) CountNodes(ctx context.Context, parentIDs []int64, classes []string) (int, error) {
	index, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(index.matching(parentIDs, classes)), nil
}

func (s *YAMLSource) ModifiedSubnode(ctx context.Context, parentID int64) (time.Time, error) {
	index, err := s.load(ctx)
	if err != nil {
		return time.Time{}, err
	}
	i, ok := index.byID[parentID]
	if !ok {
		return time.Time{}, fmt.Errorf("node %d not found in %s", parentID, s.path)
	}

	modified := index.nodes[i].Modified
	for id := range index.descendants([]int64{parentID}) {
		if m := index.nodes[index.byID[id]].Modified; m.After(modified) {
			modified = m
		}
	}
	return modified, nil
}
