// Package settings owns the process-wide configuration store: a shared
// key/value mapping populated at most once by a load source and guarded
// against concurrent access. Consumers obtain the single store through
// Instance and read values with Get; the underlying map is never exposed.
package settings
