// Package service wires protocol transport to the roll tools.
//
// It is the transport adapter layer: the package knows how to run MCP over stdio
// or HTTP and delegates roll evaluation to the domain handlers.
package service
