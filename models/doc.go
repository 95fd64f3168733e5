// Package models holds the bun mapped records served by the cache-aside
// services. Identities are assigned by the database on insert.
package models
