// Package service contains the application services orchestrating store
// lookups, ownership checks, and mutations for each use case. Every
// operation receives the authenticated principal email explicitly; nothing
// is read from ambient state.
package service
