// Package api
// Author: momentics <momentics@gmail.com>
//
// Shared contracts of the safemem library: structured error codes for the
// buffer lifecycle state machine, leak reporting types, and the allocator
// and free-list abstractions implemented under internal/ and pool/.
package api
