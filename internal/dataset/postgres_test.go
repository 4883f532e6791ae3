package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
)

// MockPgPool implements PgQuerier for testing
type MockPgPool struct {
	QueryFunc func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.QueryFunc(ctx, sql, args...)
}

// MockPgRows serves string columns row by row.
type MockPgRows struct {
	pgx.Rows
	Data    [][]string
	Index   int
	ScanErr error
	IterErr error
}

func (m *MockPgRows) Next() bool {
	m.Index++
	return m.Index <= len(m.Data)
}

func (m *MockPgRows) Scan(dest ...any) error {
	if m.ScanErr != nil {
		return m.ScanErr
	}
	for i, v := range m.Data[m.Index-1] {
		*(dest[i].(*string)) = v
	}
	return nil
}

func (m *MockPgRows) Close()     {}
func (m *MockPgRows) Err() error { return m.IterErr }

func TestPostgresSource_ComponentRows(t *testing.T) {
	var gotSQL string
	pool := &MockPgPool{QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		gotSQL = sql
		return &MockPgRows{Data: [][]string{
			{"C001", "Match Statistics", "First serve percentage", "Publicly Available", "Yes", "ATP", "Yes"},
			{"C002", "Recent Form", "Win streak", "Publicly Available", "No", "ATP", "No"},
		}}, nil
	}}

	rows, err := NewPostgresSource(pool).ComponentRows(context.Background())
	if err != nil {
		t.Fatalf("ComponentRows() error = %v", err)
	}
	if !strings.Contains(gotSQL, "FROM checklist_components") || !strings.Contains(gotSQL, "ORDER BY seq") {
		t.Errorf("unexpected query: %s", gotSQL)
	}
	if len(rows) != 2 || rows[1].ID != "C002" || rows[1].RealTimeAvailable != "No" {
		t.Errorf("rows = %+v", rows)
	}

	c, err := BuildChecklist(rows)
	if err != nil {
		t.Fatalf("BuildChecklist() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestPostgresSource_MatchRowsErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		wantErr string
	}{
		{
			name: "query fails",
			query: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				return nil, errors.New("connection refused")
			},
			wantErr: "query matches: connection refused",
		},
		{
			name: "scan fails",
			query: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				return &MockPgRows{Data: [][]string{{"x"}}, ScanErr: errors.New("bad column")}, nil
			},
			wantErr: "scan matches: bad column",
		},
		{
			name: "iteration fails",
			query: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				return &MockPgRows{IterErr: errors.New("conn reset")}, nil
			},
			wantErr: "iterate matches: conn reset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPostgresSource(&MockPgPool{QueryFunc: tt.query}).MatchRows(context.Background())
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("MatchRows() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
