// Package config defines the node-inspector configuration.
//
// Values are layered, lowest first: struct tag defaults (creasty/defaults),
// the optional config file, NODE_INSPECTOR_* environment variables, then
// command line flags. Keys are dotted section names, e.g. database.url is
// read from NODE_INSPECTOR_DATABASE_URL or the --url flag.
//
// # Configuration Structure
//
//	Configuration
//	├── Database   - node database connection
//	├── Bridge     - management bridge proxy and polling
//	├── Snapshot   - report naming and failure handling
//	├── Keystore   - keystore passwords
//	├── Server     - diagnostic HTTP API
//	├── LogFormat  - console or json
//	└── LogLevel   - zap level name
//
// # Database
//
//	┌──────────┬─────────┬──────────────────────────────────────────────┐
//	│ Field    │ Default │ Description                                  │
//	├──────────┼─────────┼──────────────────────────────────────────────┤
//	│ URL      │ ""      │ jdbc:duckdb:, jdbc:postgresql:// or jdbc:h2: │
//	│ Username │ "sa"    │                                              │
//	│ Password │ ""      │ masked in DebugMap                           │
//	│ Driver   │ ""      │ database/sql driver, derived from URL if ""  │
//	└──────────┴─────────┴──────────────────────────────────────────────┘
//
// # Bridge
//
//	┌──────────┬─────────────────────────┬──────────────────────────────┐
//	│ Field    │ Default                 │ Description                  │
//	├──────────┼─────────────────────────┼──────────────────────────────┤
//	│ ProxyURL │ ""                      │ unset: bridge calls fail     │
//	│ AgentURL │ "http://localhost:7005" │ agent url relayed by proxy   │
//	│ Token    │ ""                      │ bearer token, masked         │
//	│ Timeout  │ 30s                     │ per request                  │
//	│ Workers  │ 4                       │ concurrent probes            │
//	│ Interval │ 5s                      │ watch period                 │
//	└──────────┴─────────────────────────┴──────────────────────────────┘
//
// # Debug Logging
//
//	zap.S().Debugw("configuration loaded", "config", cfg.DebugMap())
package config
