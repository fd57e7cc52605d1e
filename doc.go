// Package main provides the entry point of GoRBAC-Admin, a web dashboard for
// managing users, roles and permissions. Every change is recorded in an audit
// log. The collections are kept as JSON arrays in a key-value store backed by
// gorm (sqlite, mysql or postgres) or redis, and served through Fiber with
// server-rendered templates.
package main
