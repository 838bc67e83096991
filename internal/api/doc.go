// Package api defines the transport-friendly DTOs shared by the HTTP and IPC
// surfaces, plus converters from the internal engine and store types.
package api
