package store

import (
	"context"
	"database/sql"

	"github.com/kubev2v/node-inspector/internal/models"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// TableStore reads catalog tables. Every call scans the live table; nothing
// is cached.
type TableStore struct {
	db QueryInterceptor
}

func NewTableStore(db QueryInterceptor) *TableStore {
	return &TableStore{db: db}
}

// Fetch scans the whole table and materializes it.
func (s *TableStore) Fetch(ctx context.Context, table models.TableName) (*models.RowSet, error) {
	if !table.Valid() {
		return nil, srvErrors.NewUnknownTableError(table.String())
	}

	query, args, err := scanTableQuery(table).ToSql()
	if err != nil {
		return nil, srvErrors.NewQueryError(table.String(), err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(table, err)
	}
	defer rows.Close()

	rs, err := materialize(table, rows)
	if err != nil {
		return nil, wrapQueryError(table, err)
	}
	return rs, nil
}

// FetchAll fetches every catalog table in catalog order. It stops at the
// first failure.
func (s *TableStore) FetchAll(ctx context.Context) ([]*models.RowSet, error) {
	tables := models.Tables()
	result := make([]*models.RowSet, 0, len(tables))
	for _, table := range tables {
		rs, err := s.Fetch(ctx, table)
		if err != nil {
			return nil, err
		}
		result = append(result, rs)
	}
	return result, nil
}

// Columns returns the table's columns as the engine reports them, without
// reading any row.
func (s *TableStore) Columns(ctx context.Context, table models.TableName) ([]string, error) {
	if !table.Valid() {
		return nil, srvErrors.NewUnknownTableError(table.String())
	}

	query, args, err := tableColumnsQuery(table).ToSql()
	if err != nil {
		return nil, srvErrors.NewQueryError(table.String(), err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, wrapQueryError(table, err)
	}
	return columns, nil
}

func materialize(table models.TableName, rows *sql.Rows) (*models.RowSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := models.NewRowSet(table, columns)
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(models.Row, len(columns))
		for i, c := range columns {
			row[c] = values[i]
		}
		rs.Rows = append(rs.Rows, row)
	}

	return rs, rows.Err()
}

func wrapQueryError(table models.TableName, err error) error {
	if srvErrors.IsConnectionClosedError(err) {
		return err
	}
	return srvErrors.NewQueryError(table.String(), err)
}
