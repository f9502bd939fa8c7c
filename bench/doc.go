// Package bench drives concurrent get/put workloads against a shared
// allocator and reports per-worker and aggregate throughput.
//
// Each worker owns one sbitmap.Hint, optionally pins itself to a CPU,
// and performs get/put pairs in a tight loop for a fixed duration. A
// naive unpadded bitmap is included as a baseline so the effect of
// cache-line isolation and hints can be measured directly.
package bench
