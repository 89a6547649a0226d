// Package types defines the Catalog, TokenStore and SnapshotManager
// interfaces, the token, snapshot and diff entity types, and the error
// taxonomy shared by every swatch backend.
package types
