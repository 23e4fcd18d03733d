// Package pool recycles instances of a type instead of rebuilding them.
//
// A Pool is prewarmed with a fixed number of instances, hands them out in
// FIFO order and grows through its factory when it runs dry. Types that
// implement Poolable are notified when they leave and re-enter the pool.
// Registry keeps one pool per type for a host.
package pool
