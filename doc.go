// Package main provides the entry point of GoACL-Admin, a multi-tenant access
// control backend. It serves a JSON REST API on top of Fiber for managing
// namespaces, users, roles, resources and the user-role and role-permission
// bindings between them. Data is persisted with gorm on SQLite, MySQL or
// PostgreSQL and every API call except login requires a bearer JWT.
package main
