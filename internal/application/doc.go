// Package application provides application initialization and dependency
// wiring. It configures the process-wide settings store (source chain and
// observer), performs the eager startup load, initialises the consumer
// collaborators, and assembles the HTTP server, keeping the main package
// focused on CLI parsing and orchestration.
package application
