// Package app contains the core application logic. It wires configuration
// loading, graph validation, planning and execution together behind the App
// struct, decoupled from any specific entrypoint like a CLI or server.
package app
