package api

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// SuiObjectResponse is returned by object-by-id lookups. Exactly one of
// Data and Error is set.
type SuiObjectResponse struct {
	Data  *SuiObjectData       `json:"data,omitempty"`
	Error *ObjectResponseError `json:"error,omitempty"`
}

// ObjectResponseError describes why an object lookup produced no data,
// e.g. the object was deleted or never existed.
type ObjectResponseError struct {
	Code     string `json:"code"`
	ObjectId string `json:"object_id,omitempty"`
}

// SuiObjectData is the object content and metadata of a live object.
type SuiObjectData struct {
	ObjectId string `json:"objectId"`
	// Version is a decimal string; object versions can exceed the safe
	// JSON integer range.
	Version             string `json:"version"`
	Digest              string `json:"digest"`
	Type                string `json:"type,omitempty"`
	Owner               *Owner `json:"owner,omitempty"`
	PreviousTransaction string `json:"previousTransaction,omitempty"`
	StorageRebate       string `json:"storageRebate,omitempty"`
}

// Owner describes who may use an object. It is a tagged JSON variant:
// the string "Immutable", or one of the single-key objects
// {"AddressOwner": addr}, {"ObjectOwner": addr}, or
// {"Shared": {"initial_shared_version": n}}.
type Owner struct {
	AddressOwner string       `json:"AddressOwner,omitempty"`
	ObjectOwner  string       `json:"ObjectOwner,omitempty"`
	Shared       *SharedOwner `json:"Shared,omitempty"`
	Immutable    bool         `json:"-"`
}

// SharedOwner carries the version at which an object was turned shared.
// Transactions touching the object must quote this exact version.
type SharedOwner struct {
	InitialSharedVersion uint64 `json:"initial_shared_version"`
}

// UnmarshalJSON handles both the bare-string and object encodings of the
// owner variant.
func (o *Owner) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		if label != "Immutable" {
			return errors.Newf("unknown owner label %q", label)
		}
		o.Immutable = true
		return nil
	}
	type ownerAlias Owner
	var alias ownerAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return errors.Wrap(err, "unmarshal owner")
	}
	*o = Owner(alias)
	return nil
}

// MarshalJSON emits the same tagged variant forms the node produces.
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.Immutable {
		return json.Marshal("Immutable")
	}
	type ownerAlias Owner
	return json.Marshal(ownerAlias(o))
}

// SuiObjectDataOptions selects which fields of an object lookup to
// populate.
type SuiObjectDataOptions struct {
	ShowType                bool `json:"showType,omitempty"`
	ShowOwner               bool `json:"showOwner,omitempty"`
	ShowPreviousTransaction bool `json:"showPreviousTransaction,omitempty"`
	ShowDisplay             bool `json:"showDisplay,omitempty"`
	ShowContent             bool `json:"showContent,omitempty"`
	ShowBcs                 bool `json:"showBcs,omitempty"`
	ShowStorageRebate       bool `json:"showStorageRebate,omitempty"`
}

// FullObjectDataOptions requests every object field.
func FullObjectDataOptions() SuiObjectDataOptions {
	return SuiObjectDataOptions{
		ShowType:                true,
		ShowOwner:               true,
		ShowPreviousTransaction: true,
		ShowDisplay:             true,
		ShowContent:             true,
		ShowBcs:                 true,
		ShowStorageRebate:       true,
	}
}
