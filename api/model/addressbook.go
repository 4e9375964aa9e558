package model

import "time"

// AddressBook exists in strict 1:1 correspondence with every
// User-permission account. The row is created and destroyed inside the
// same transaction as its account row; a half-created pair must never
// be observable.
type AddressBook struct {
	Username  string    `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	Tags      []string  `gorm:"serializer:json;not null;default:'[]'" json:"tags"`
	Peers     []Peer    `gorm:"serializer:json;not null;default:'[]'" json:"peers"`
}

func (AddressBook) TableName() string {
	return "address_book"
}

// Peer is a device record owned by exactly one address book. The whole
// peers collection is replaced on every address-book update; peers have
// no lifecycle of their own.
type Peer struct {
	ID       string   `json:"id"`
	Username string   `json:"username,omitempty"`
	Hostname string   `json:"hostname,omitempty"`
	Platform string   `json:"platform,omitempty"`
	Alias    string   `json:"alias,omitempty"`
	Tags     []string `json:"tags"`
}
