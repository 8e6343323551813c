// Package store implements read access to a node's database.
//
// A Store owns exactly one database session. It is opened from a JDBC-style
// URL, scans the tables of a fixed catalog, and answers a handful of vault
// lookups by filtering those scans in memory.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│              VaultStore (filters / joins in memory)             │
//	│                             ▼                                   │
//	│              TableStore (SELECT * FROM <catalog table>)         │
//	│                             ▼                                   │
//	│              QueryInterceptor (debug logging, closed check)     │
//	│                             ▼                                   │
//	│              session: *sql.DB + one reserved *sql.Conn          │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Connection URLs
//
//	┌──────────────┬──────────────────────────────────────┬──────────┐
//	│ Subprotocol  │ Example                              │ Driver   │
//	├──────────────┼──────────────────────────────────────┼──────────┤
//	│ duckdb       │ jdbc:duckdb:/data/node.db            │ duckdb   │
//	│ postgresql   │ jdbc:postgresql://db:5432/node       │ pgx      │
//	│ h2           │ jdbc:h2:tcp://localhost:5435/node    │ pgx      │
//	└──────────────┴──────────────────────────────────────┴──────────┘
//
// H2 is reached through its PostgreSQL server mode (started with -pg), so the
// URL must point at the pg port. The driver can be overridden with "postgres"
// (lib/pq) for the PostgreSQL-protocol subprotocols.
//
// Open pings the database before returning; any failure is reported as a
// ConnectionError and nothing is left open.
//
// # Table Accessor
//
// TableStore.Fetch(ctx, table) issues an unordered, unpaginated full scan and
// returns a models.RowSet whose columns follow the order reported by the
// driver. Tables outside models.Tables() are rejected with a QueryError
// before any SQL is sent.
//
// # Vault Lookups
//
//	┌──────────────────────────────────────┬───────────────────────────────────────────────┐
//	│ Method                               │ Predicate                                     │
//	├──────────────────────────────────────┼───────────────────────────────────────────────┤
//	│ FindByLinearID                       │ VAULT_LINEAR_STATES.UUID = id                 │
//	│ FindVaultStatesByTransactionID       │ VAULT_STATES.TRANSACTION_ID = tx              │
//	│ FindFungibleStatesByTransactionID    │ VAULT_FUNGIBLE_STATES.TRANSACTION_ID = tx     │
//	│ FindFungibleStatesByIssuer           │ VAULT_FUNGIBLE_STATES.ISSUER_NAME = issuer    │
//	│ FindUnconsumedStatesByContractClass  │ CONSUMED_TIMESTAMP IS NULL AND class = c      │
//	│ FindLinearIDByTransactionID          │ first linear state of tx, else NotFoundError  │
//	│ FindStatesByLinearID                 │ linear states ⋈ vault states (tx, index)      │
//	│ FindTransactionNotes                 │ VAULT_TRANSACTION_NOTES.TRANSACTION_ID = tx   │
//	└──────────────────────────────────────┴───────────────────────────────────────────────┘
//
// # Concurrency
//
// Statements run sequentially on the single reserved session. A Store must
// not be shared between goroutines; services.Inspector serializes access when
// one is needed behind the HTTP API.
package store
