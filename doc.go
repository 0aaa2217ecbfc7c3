// Package main provides the entry point for the RADIUS administration
// application. It exposes a CLI built with cobra that migrates and seeds the
// database schema used by a multi-tenant FreeRADIUS deployment: users,
// organizations, groups, per-user and per-group attributes, accounting
// sessions and batch provisioning jobs. The application uses gorm for data
// persistence and keeps the denormalized RADIUS tables consistent with their
// owning records.
package main
