// Package concurrency
// Author: momentics <momentics@gmail.com>
//
// Lock-free containers backing the pool free lists.
package concurrency
