package store

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	// database/sql drivers selectable with the driver argument of Open.
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

const (
	DriverDuckDB   = "duckdb"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"

	jdbcPrefix = "jdbc:"

	// H2 answers the PostgreSQL protocol on this port when started with -pg.
	defaultH2PgPort       = "5435"
	defaultPostgresPort   = "5432"
	subprotocolDuckDB     = "duckdb"
	subprotocolPostgreSQL = "postgresql"
	subprotocolH2         = "h2"
)

// Target is a JDBC-style URL translated for database/sql.
type Target struct {
	Subprotocol string
	Driver      string
	DSN         string
}

// ParseURL translates a JDBC-style URL into a database/sql DSN. The returned
// driver is the default for the subprotocol; callers may override it.
//
//	jdbc:duckdb:/var/node/persistence.db
//	jdbc:postgresql://db:5432/node?currentSchema=node
//	jdbc:h2:tcp://localhost:5435/node
func ParseURL(rawURL, username, password string) (*Target, error) {
	if !strings.HasPrefix(rawURL, jdbcPrefix) {
		return nil, fmt.Errorf("url %q does not start with %q", rawURL, jdbcPrefix)
	}
	rest := strings.TrimPrefix(rawURL, jdbcPrefix)
	subprotocol, location, ok := strings.Cut(rest, ":")
	if !ok || subprotocol == "" {
		return nil, fmt.Errorf("url %q has no subprotocol", rawURL)
	}

	switch strings.ToLower(subprotocol) {
	case subprotocolDuckDB:
		path := location
		if path == ":memory:" {
			path = ""
		}
		return &Target{Subprotocol: subprotocolDuckDB, Driver: DriverDuckDB, DSN: path}, nil
	case subprotocolPostgreSQL:
		dsn, err := postgresDSN(location, username, password, defaultPostgresPort, nil)
		if err != nil {
			return nil, err
		}
		return &Target{Subprotocol: subprotocolPostgreSQL, Driver: DriverPgx, DSN: dsn}, nil
	case subprotocolH2:
		if !strings.HasPrefix(location, "tcp:") {
			return nil, fmt.Errorf("only tcp H2 urls are supported, got %q", rawURL)
		}
		location = strings.TrimPrefix(location, "tcp:")
		// H2 settings follow the path after ';'.
		location, _, _ = strings.Cut(location, ";")
		dsn, err := postgresDSN(location, username, password, defaultH2PgPort, url.Values{"sslmode": {"disable"}})
		if err != nil {
			return nil, err
		}
		return &Target{Subprotocol: subprotocolH2, Driver: DriverPgx, DSN: dsn}, nil
	default:
		return nil, fmt.Errorf("unsupported subprotocol %q", subprotocol)
	}
}

func postgresDSN(location, username, password, defaultPort string, extra url.Values) (string, error) {
	if !strings.HasPrefix(location, "//") {
		return "", fmt.Errorf("location %q must start with //", location)
	}
	u, err := url.Parse("postgres:" + location)
	if err != nil {
		return "", fmt.Errorf("malformed location %q: %w", location, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("location %q has no host", location)
	}
	database := strings.TrimPrefix(u.Path, "/")
	if database == "" {
		return "", fmt.Errorf("location %q has no database", location)
	}

	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	u.Host = net.JoinHostPort(u.Hostname(), port)
	u.Path = "/" + database

	if username != "" {
		u.User = url.UserPassword(username, password)
	}

	query := u.Query()
	for k, vs := range extra {
		if query.Get(k) == "" {
			query[k] = vs
		}
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}
