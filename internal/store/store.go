package store

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// Store is an open connection to a node database. It owns one session; it
// must not be used by concurrent callers.
type Store struct {
	session *session
	tables  *TableStore
	vault   *VaultStore
}

// Open connects to the node database at the JDBC-style url. driver names the
// database/sql driver to use; empty selects the default for the url's
// subprotocol. Every failure is a ConnectionError and nothing stays open.
func Open(ctx context.Context, url, username, password, driver string) (*Store, error) {
	target, err := ParseURL(url, username, password)
	if err != nil {
		return nil, srvErrors.NewConnectionError(url, driver, err)
	}
	if driver == "" {
		driver = target.Driver
	}
	if !slices.Contains(sql.Drivers(), driver) {
		return nil, srvErrors.NewConnectionError(url, driver, errors.New("driver is not available"))
	}

	db, err := sql.Open(driver, target.DSN)
	if err != nil {
		return nil, srvErrors.NewConnectionError(url, driver, err)
	}

	s, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, srvErrors.NewConnectionError(url, driver, err)
	}

	zap.S().Named("store").Infow("connected to node database", "subprotocol", target.Subprotocol, "driver", driver)
	return s, nil
}

// New reserves a session on db and verifies it answers. The Store takes
// ownership of db: Close closes it.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	sess := &session{db: db, conn: conn}
	tables := NewTableStore(newQueryInterceptor(sess))
	return &Store{
		session: sess,
		tables:  tables,
		vault:   NewVaultStore(tables),
	}, nil
}

func (s *Store) Tables() *TableStore {
	return s.tables
}

func (s *Store) Vault() *VaultStore {
	return s.vault
}

// Close releases the session and the underlying pool. Closing twice is an
// error.
func (s *Store) Close() error {
	if !s.session.closed.CompareAndSwap(false, true) {
		return srvErrors.NewConnectionClosedError()
	}
	connErr := s.session.conn.Close()
	dbErr := s.session.db.Close()
	return errors.Join(connErr, dbErr)
}
