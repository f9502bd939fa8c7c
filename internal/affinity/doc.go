// Package affinity binds benchmark threads to processors.
//
// Pinning each worker to its own CPU makes throughput numbers
// reproducible and exposes cache-line effects that scheduler migration
// would otherwise blur. Only Linux supports pinning; on other
// platforms Pin reports errors.ErrUnsupported and callers fall back to
// unpinned workers.
package affinity
