// Package runid stamps each sampler run with a unique identifier. The SQLite
// snapshot sink stores it with every row it writes; flat-file snapshot names
// and the SQLite table name do not include it.
package runid

import "github.com/google/uuid"

// New returns a fresh run identifier.
func New() string {
	return uuid.NewString()
}
