package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/node-inspector/internal/models"
)

// Table names come from the catalog only, never from user input, so they are
// safe to splice into FROM.

func scanTableQuery(table models.TableName) sq.SelectBuilder {
	return sq.Select("*").From(table.String())
}

func tableColumnsQuery(table models.TableName) sq.SelectBuilder {
	return scanTableQuery(table).Limit(0)
}
