// Package store provides durable key-value storage backed by SQLite.
//
// The store is the single source of truth shared by all contexts: the
// allow-list, the bounded scan history, and the user settings all live
// here under fixed keys. Every operation is a full read-modify-write
// round trip on the enclosing value; there is no transaction spanning
// contexts, so concurrent writers follow last-write-wins semantics.
package store
