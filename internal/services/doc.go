// Package services contains the consumer collaborators (database, API
// client, cache, telemetry) that read their configuration from the shared
// settings store. They reach the store only through settings.Instance and
// Get; none of them can construct a store of their own.
package services
