// Package settings persists the application configuration and upgrades
// stored blobs across schema generations.
//
// [Store] reads and writes the [model.Settings] object under a single fixed
// key. [Migrate] upgrades the old flat single-provider schema to the current
// dual-provider shape; [Store.Load] runs it transparently and persists the
// result on first read, so stores self-heal.
//
// Nothing in this package throws past its public surface: writes degrade to
// no-ops and reads to nil, with detail kept in the log.
package settings
