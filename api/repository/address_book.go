package repository

import (
	"context"
	"time"

	"deskflow/api/model"

	"gorm.io/gorm"
)

// AddressBookRepository reads and replaces per-account address books.
// Replace is last-writer-wins; each book has exactly one legitimate
// owner session, so no optimistic concurrency token is kept.
type AddressBookRepository interface {
	Get(ctx context.Context, username string) (*model.AddressBook, error)
	Replace(ctx context.Context, username string, tags []string, peers []model.Peer) error
}

type addressBookRepository struct {
	db *gorm.DB
}

func NewAddressBookRepository(db *gorm.DB) AddressBookRepository {
	return &addressBookRepository{db: db}
}

func (r *addressBookRepository) Get(ctx context.Context, username string) (*model.AddressBook, error) {
	var book model.AddressBook
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&book).Error
	if err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

func (r *addressBookRepository) Replace(ctx context.Context, username string, tags []string, peers []model.Peer) error {
	if tags == nil {
		tags = []string{}
	}
	if peers == nil {
		peers = []model.Peer{}
	}
	book := model.AddressBook{
		UpdatedAt: time.Now().UTC(),
		Tags:      tags,
		Peers:     peers,
	}
	err := r.db.WithContext(ctx).Model(&model.AddressBook{}).
		Where("username = ?", username).
		Select("updated_at", "tags", "peers").
		Updates(book).Error
	return translate(err)
}
