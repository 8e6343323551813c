package store

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// session is the one database session a Store owns.
type session struct {
	db     *sql.DB
	conn   *sql.Conn
	closed atomic.Bool
}

// QueryInterceptor runs statements on the store's session and logs them at
// debug level.
type QueryInterceptor struct {
	s *session
}

func newQueryInterceptor(s *session) QueryInterceptor {
	return QueryInterceptor{s: s}
}

func (q QueryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if q.s.closed.Load() {
		return nil, srvErrors.NewConnectionClosedError()
	}

	start := time.Now()
	rows, err := q.s.conn.QueryContext(ctx, query, args...)
	zap.S().Named("store").Debugw("query", "sql", query, "args", args, "duration", time.Since(start), "error", err)

	return rows, err
}
