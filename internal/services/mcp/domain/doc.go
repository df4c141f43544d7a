// Package domain translates MCP tool calls into roll evaluations.
//
// Each tool is a pair of functions: one returning the tool definition and one
// returning a typed handler. Handlers never keep state between calls; every
// random roll is replayable from the seed reported in its result.
package domain
