// Package services implements the node-inspector operations that sit above
// the store and the bridge client.
//
// # Service Dependency Graph
//
//	CLI commands / HTTP handlers
//	    │
//	    ▼
//	Services Layer
//	    ├── Inspector ──► Store (mutex, one statement at a time)
//	    ├── Snapshot ───► TableFetcher, render
//	    ├── Export ─────► TableFetcher, excelize
//	    └── Monitor ────► Scheduler, bridge.Client
//
// # Snapshot
//
// Snapshot walks models.Tables() in order and writes one text file:
//
//	----------------- NODE_ATTACHMENTS
//	+---------+---------------+-----+
//	| ATT_ID  | FILENAME      | ... |
//	+---------+---------------+-----+
//	| some_id | contracts.jar | ... |
//	+---------+---------------+-----+
//	(1 rows)
//	----------------- NODE_ATTACHMENTS_CONTRACTS
//	...
//
// The default file name is <nodeName>_snapshot_<YYYYMMDD_HHMMSS>.txt under the
// output directory. A failing table aborts the whole snapshot and removes the
// partial file unless WithContinueOnError is set, in which case the table is
// replaced by an "error: ..." line.
//
// # Export
//
// Export is the workbook variant of Snapshot: one sheet per table named after
// it, the header row first. It follows the same failure rules and writes
// nothing when it aborts.
//
// # Monitor
//
// Monitor.Poll fans probes out on the scheduler, one HTTP call per worker, and
// collects the responses by probe name. Watch repeats Poll on a ticker.
//
//	monitor := services.NewMonitorService(scheduler.NewScheduler(4), client)
//	responses, err := monitor.Poll(ctx, bridge.ProbeMemory, bridge.ProbeFlowsInFlight)
//
// # Inspector
//
// Inspector is what the HTTP API talks to. It guards the single store session
// with a mutex and combines the vault lookups behind query structs.
package services
