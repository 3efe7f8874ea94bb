// Package sdk provides the client-side library for the Warga Store.
// It supports both remote connections via TCP/TLS and local embedded
// mode.
package sdk

import "github.com/wargadata-dev/warga-store/pkg/schema"

// RecordStore is the contract for interacting with the registry. Both
// the local embedded engine and the remote network client implement
// it.
type RecordStore interface {
	// Add validates and creates a record from raw field strings,
	// returning the canonical stored record.
	Add(name, nationalID, address, amount string) (schema.Record, error)
	// Delete removes the record with the given id. Unknown ids are a
	// no-op.
	Delete(id int64) error
	// DeleteAll clears the registry. Irreversible.
	DeleteAll() error
	// List returns all records, newest-first.
	List() ([]schema.Record, error)
	// Search filters records by the engine's query semantics: blank
	// queries return everything; otherwise name/address match
	// case-insensitively and nationalId matches as typed.
	Search(query string) ([]schema.Record, error)
}

// Exporter produces report files from the registry contents. Kinds
// are "xlsx", "pdf", and "doc".
type Exporter interface {
	// Export builds the named report and returns the path it was
	// written to.
	Export(kind string) (string, error)
}
