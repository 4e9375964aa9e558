package dto

import (
	"encoding/json"

	"deskflow/api/model"
)

// AddressBookData is the wire form of an address book: the book is a
// JSON document carried inside a single string-typed "data" field
// (double-encoded). Existing clients depend on this shape, so the
// pack/unpack step lives here and the store only ever sees native
// values.
type AddressBookData struct {
	Data model.AddressBook
}

func (d AddressBookData) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(d.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Data string `json:"data"`
	}{Data: string(inner)})
}

func (d *AddressBookData) UnmarshalJSON(data []byte) error {
	var outer struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return err
	}
	return json.Unmarshal([]byte(outer.Data), &d.Data)
}
