package model

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// pendingPrefix marks identifiers generated locally for records that have not
// been persisted yet. It is kept wire-compatible with existing clients.
const pendingPrefix = "temp_"

// EntityID identifies a catalog record (service, work, testimonial). It is
// either a persisted database identifier or a pending local key for a record
// created in the editor and not yet saved. The two cases are carried as an
// explicit tag instead of prefix sniffing scattered through callers.
type EntityID struct {
	value   string
	pending bool
}

// PersistedID wraps an identifier already assigned by storage.
func PersistedID(value string) EntityID {
	return EntityID{value: value}
}

// NewPendingID generates a fresh local key for an unsaved record.
func NewPendingID() EntityID {
	return EntityID{value: uuid.New().String(), pending: true}
}

// ParseEntityID accepts the wire form: values carrying the pending prefix
// parse as pending, everything else as persisted.
func ParseEntityID(s string) EntityID {
	if key, ok := strings.CutPrefix(s, pendingPrefix); ok {
		return EntityID{value: key, pending: true}
	}
	return EntityID{value: s}
}

// Pending reports whether the record has not been persisted yet.
func (id EntityID) Pending() bool { return id.pending }

// Value returns the raw identifier without the pending marker.
func (id EntityID) Value() string { return id.value }

// IsZero reports whether the ID is unset.
func (id EntityID) IsZero() bool { return id.value == "" }

func (id EntityID) String() string {
	if id.pending {
		return pendingPrefix + id.value
	}
	return id.value
}

func (id EntityID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *EntityID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ParseEntityID(s)
	return nil
}
