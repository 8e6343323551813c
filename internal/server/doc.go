// Package server provides the HTTP server of the diagnostic API.
//
// The server uses the Gin web framework. It has no TLS and serves no static
// files: it is meant to be reached on a trusted network next to the node.
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server :8000                     │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (request/response logging)                      │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
//   - dev: gin debug mode
//   - prod: gin release mode
//
// # Lifecycle
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    handlers.New(inspector, monitor).RegisterRoutes(router)
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Blocks; shuts down gracefully when ctx ends
//	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
//	    return err
//	}
//
// # Middleware
//
// Logger (middlewares.Logger) logs request start at debug level and request
// end with status and latency at info level, under the "http" logger.
//
// Recovery (ginzap.RecoveryWithZap) turns handler panics into a 500 and logs
// the stack trace.
//
// Unknown routes answer 404 with a JSON error body.
package server
