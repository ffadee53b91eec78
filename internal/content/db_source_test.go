package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listNodesQuery = "SELECT n.id, n.parent_id, n.class_identifier, n.name, n.modified FROM content_nodes n " +
		"WHERE ((n.path_string LIKE ? AND n.id <> ?) OR (n.path_string LIKE ? AND n.id <> ?)) " +
		"AND n.class_identifier IN (?, ?) ORDER BY n.path_string, n.id"
	listAttributesQuery = "SELECT node_id, identifier, content FROM content_attributes WHERE node_id IN (?, ?)"
	countNodesQuery     = "SELECT COUNT(*) FROM content_nodes n " +
		"WHERE ((n.path_string LIKE ? AND n.id <> ?) OR (n.path_string LIKE ? AND n.id <> ?)) " +
		"AND n.class_identifier IN (?, ?)"
)

func newMockDBSource(t *testing.T) (*DBSource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewDBSource(sqlx.NewDb(db, "mysql")), mock
}

func TestDBSource_ListNodes(t *testing.T) {
	source, mock := newMockDBSource(t)
	modified := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(listNodesQuery).
		WithArgs("%/2/%", int64(2), "%/43/%", int64(43), "event", "term").
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "class_identifier", "name", "modified"}).
			AddRow(int64(10), int64(2), "event", "Concert", modified).
			AddRow(int64(11), int64(43), "term", "Fox", modified))
	mock.ExpectQuery(listAttributesQuery).
		WithArgs(int64(10), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"node_id", "identifier", "content"}).
			AddRow(int64(10), "title", "Concert").
			AddRow(int64(10), "summary", "Live music").
			AddRow(int64(11), "description", "A wild animal"))

	got, err := source.ListNodes(context.Background(), []int64{2, 43}, []string{"event", "term"})
	require.NoError(t, err)
	assert.Equal(t, []WordNode{
		{ID: 10, ParentID: 2, ClassIdentifier: "event", Name: "Concert", Modified: modified, Attributes: map[string]string{
			"title":   "Concert",
			"summary": "Live music",
		}},
		{ID: 11, ParentID: 43, ClassIdentifier: "term", Name: "Fox", Modified: modified, Attributes: map[string]string{
			"description": "A wild animal",
		}},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSource_ListNodes_NoRows(t *testing.T) {
	source, mock := newMockDBSource(t)

	mock.ExpectQuery(listNodesQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "class_identifier", "name", "modified"}))

	got, err := source.ListNodes(context.Background(), []int64{2, 43}, []string{"event", "term"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSource_ListNodes_NoClasses(t *testing.T) {
	source, mock := newMockDBSource(t)

	got, err := source.ListNodes(context.Background(), []int64{2}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSource_CountNodes(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      int
		wantErr   bool
	}{
		{
			name: "count",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(countNodesQuery).
					WithArgs("%/2/%", int64(2), "%/43/%", int64(43), "event", "term").
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(7))
			},
			want: 7,
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(countNodesQuery).WillReturnError(errors.New("connection lost"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, mock := newMockDBSource(t)
			tt.setupMock(mock)

			got, err := source.CountNodes(context.Background(), []int64{2, 43}, []string{"event", "term"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBSource_ModifiedSubnode(t *testing.T) {
	modified := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      time.Time
		wantErr   string
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT modified_subnode FROM content_nodes WHERE id = ?").
					WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"modified_subnode"}).AddRow(modified))
			},
			want: modified,
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT modified_subnode FROM content_nodes WHERE id = ?").
					WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"modified_subnode"}))
			},
			wantErr: "node 2 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, mock := newMockDBSource(t)
			tt.setupMock(mock)

			got, err := source.ModifiedSubnode(context.Background(), 2)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
