// Package control
// Author: momentics <momentics@gmail.com>
//
// Observability for the safemem library: Prometheus collectors for
// allocator and pool traffic, a named probe registry for runtime
// introspection, and an opt-in allocation audit used at test teardown.
package control
