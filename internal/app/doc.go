// Package app wires the chainforge pipeline together: it loads chain
// declarations, instantiates components through the catalog, publishes
// generations and exposes them to the CLI commands and the HTTP server.
package app
