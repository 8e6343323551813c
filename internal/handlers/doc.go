// Package handlers implements the read-only diagnostic HTTP API.
//
// Handlers parse query parameters, call the services layer and map error
// kinds to status codes. They never touch the store directly: every database
// read goes through services.Inspector, which serializes access to the single
// session.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - RowSet to JSON conversion                                    │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│              Services Layer: Inspector │ Monitor                │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
//	┌────────┬───────────────────────────┬─────────────────────────────────────────┐
//	│ Method │ Endpoint                  │ Description                             │
//	├────────┼───────────────────────────┼─────────────────────────────────────────┤
//	│ GET    │ /tables                   │ Table catalog in fixed order            │
//	│ GET    │ /tables/{name}            │ Every row of one table                  │
//	│ GET    │ /vault/states             │ transactionId, contractClass, unconsumed│
//	│ GET    │ /vault/linear?transactionId│ Linear id produced by a transaction    │
//	│ GET    │ /vault/linear/{id}        │ Linear states carrying id               │
//	│ GET    │ /vault/linear/{id}/states │ Linear states joined with vault states  │
//	│ GET    │ /vault/fungible           │ transactionId, issuer                   │
//	│ GET    │ /vault/notes              │ transactionId                           │
//	│ GET    │ /bridge/probes            │ Probe catalog                           │
//	│ GET    │ /bridge/probes/{name}     │ Run one probe                           │
//	└────────┴───────────────────────────┴─────────────────────────────────────────┘
//
// Row sets are returned as:
//
//	{
//	    "table": "VAULT_STATES",
//	    "columns": ["OUTPUT_INDEX", "TRANSACTION_ID", ...],
//	    "rows": [[0, "1", ...]],
//	    "total": 1
//	}
//
// Binary cells are hex encoded.
//
// # Errors
//
//	┌────────────────────────┬────────┐
//	│ Kind                   │ Status │
//	├────────────────────────┼────────┤
//	│ QueryError             │ 400    │
//	│ NotFoundError          │ 404    │
//	│ ConfigurationError     │ 503    │
//	│ RemoteError            │ 502    │
//	│ NetworkError           │ 502    │
//	│ ConnectionClosedError  │ 500    │
//	└────────────────────────┴────────┘
//
// Every error body is {"error": "<message>"}.
package handlers
