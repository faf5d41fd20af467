// Package models defines the core domain models for the Tablica backend.
//
// The domain is a small many-to-many membership model:
//   - User: a registered account, immutable after registration
//   - Group: a named group with a unique human-shareable join code
//   - Membership: the join entity binding a User to a Group with a role
//
// Relationships use ID strings rather than pointers to avoid circular
// references; the storage layer resolves them with SQL joins.
package models
