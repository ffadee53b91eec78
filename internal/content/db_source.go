package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DBSource reads the content tree from MySQL.
//
// content_nodes keeps a materialized path_string like "/1/2/45/" per node, so the
// descendants of a node are the rows whose path contains "/<id>/", excluding the node.
// content_attributes holds one row per node attribute.
type DBSource struct {
	db *sqlx.DB
}

func NewDBSource(db *sqlx.DB) *DBSource {
	return &DBSource{db: db}
}

type attributeRow struct {
	NodeID     int64  `db:"node_id"`
	Identifier string `db:"identifier"`
	Content    string `db:"content"`
}

// subtreeFilter builds the WHERE clause restricting rows to descendants of parentIDs with a class in classes.
// Callers must not query without parents or classes, nothing can match.
func subtreeFilter(parentIDs []int64, classes []string) (string, []any, error) {
	clause := "("
	args := make([]any, 0, len(parentIDs)*2+1)
	for i, parentID := range parentIDs {
		if i > 0 {
			clause += " OR "
		}
		clause += "(n.path_string LIKE ? AND n.id <> ?)"
		args = append(args, fmt.Sprintf("%%/%d/%%", parentID), parentID)
	}
	clause += ") AND n.class_identifier IN (?)"

	query, inArgs, err := sqlx.In(clause, append(args, classes)...)
	if err != nil {
		return "", nil, fmt.Errorf("sqlx.In > %w", err)
	}
	return query, inArgs, nil
}

func (s *DBSource) ListNodes(ctx context.Context, parentIDs []int64, classes []string) ([]WordNode, error) {
	if len(parentIDs) == 0 || len(classes) == 0 {
		return nil, nil
	}
	filter, args, err := subtreeFilter(parentIDs, classes)
	if err != nil {
		return nil, err
	}

	var nodes []WordNode
	query := s.db.Rebind("SELECT n.id, n.parent_id, n.class_identifier, n.name, n.modified FROM content_nodes n WHERE " +
		filter + " ORDER BY n.path_string, n.id")
	if err := s.db.SelectContext(ctx, &nodes, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(content_nodes) > %w", err)
	}
	if len(nodes) == 0 {
		return nodes, nil
	}

	ids := make([]int64, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.ID)
	}
	attrQuery, attrArgs, err := sqlx.In("SELECT node_id, identifier, content FROM content_attributes WHERE node_id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In > %w", err)
	}
	var attributes []attributeRow
	if err := s.db.SelectContext(ctx, &attributes, s.db.Rebind(attrQuery), attrArgs...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(content_attributes) > %w", err)
	}

	positions := make(map[int64]int, len(nodes))
	for i := range nodes {
		positions[nodes[i].ID] = i
		nodes[i].Attributes = make(map[string]string)
	}
	for _, attribute := range attributes {
		if i, ok := positions[attribute.NodeID]; ok {
			nodes[i].Attributes[attribute.Identifier] = attribute.Content
		}
	}
	return nodes, nil
}

func (s *DBSource) CountNodes(ctx context.Context, parentIDs []int64, classes []string) (int, error) {
	if len(parentIDs) == 0 || len(classes) == 0 {
		return 0, nil
	}
	filter, args, err := subtreeFilter(parentIDs, classes)
	if err != nil {
		return 0, err
	}

	var count int
	query := s.db.Rebind("SELECT COUNT(*) FROM content_nodes n WHERE " + filter)
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext(count content_nodes) > %w", err)
	}
	return count, nil
}

func (s *DBSource) ModifiedSubnode(ctx context.Context, parentID int64) (time.Time, error) {
	var modified time.Time
	err := s.db.GetContext(ctx, &modified, "SELECT modified_subnode FROM content_nodes WHERE id = ?", parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("node %d not found", parentID)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("db.GetContext(modified_subnode) > %w", err)
	}
	return modified, nil
}
