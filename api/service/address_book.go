package service

import (
	"context"
	"errors"

	"deskflow/api/guard"
	"deskflow/api/model"
	"deskflow/api/token"
	"deskflow/pkg/dferrors"
)

// The address-book operations validate the token's role but send no
// LocalPeer, so the device binding is not cross-checked here (see
// guard.Check).

func (s *accountServiceImpl) GetAddressBook(ctx context.Context, claims *token.Claims) (*model.AddressBook, error) {
	if err := guard.Check(claims, model.PermissionUser, nil); err != nil {
		return nil, err
	}
	book, err := s.books.Get(ctx, claims.Username())
	if err != nil {
		if !errors.Is(err, dferrors.ErrNotFound) {
			s.logger.Warningf("get address book for %q failed: %v", claims.Username(), err)
		}
		return nil, err
	}
	return book, nil
}

func (s *accountServiceImpl) UpdateAddressBook(ctx context.Context, claims *token.Claims, tags []string, peers []model.Peer) error {
	if err := guard.Check(claims, model.PermissionUser, nil); err != nil {
		return err
	}
	if err := s.books.Replace(ctx, claims.Username(), tags, peers); err != nil {
		s.logger.Warningf("update address book for %q failed: %v", claims.Username(), err)
		return err
	}
	return nil
}
