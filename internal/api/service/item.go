package service

import (
	"context"
	"errors"
	"strings"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/idx"
)

const MaxTitleLen = 255

var ErrInvalidTitle = errors.New("invalid_title")

// ItemService owns the item CRUD rules. The acting user is always passed in
// explicitly; superusers see everything, everyone else only their own items.
type ItemService struct {
	Store store.Store
}

// ItemUpdate carries a partial item edit. Nil means leave as is.
type ItemUpdate struct {
	Title       *string
	Description *string
}

func (s *ItemService) CreateItem(ctx context.Context, owner domain.User, title, description string) (domain.Item, error) {
	title, err := validateTitle(title)
	if err != nil {
		return domain.Item{}, err
	}

	it := domain.Item{
		ID:          idx.New().String(),
		Title:       title,
		Description: description,
		OwnerID:     owner.ID,
	}
	if err := s.Store.Items().CreateItem(ctx, it); err != nil {
		return domain.Item{}, err
	}
	return s.Store.Items().GetItemByID(ctx, it.ID)
}

// GetItem fetches one item, enforcing ownership for non-superusers.
func (s *ItemService) GetItem(ctx context.Context, actor domain.User, itemID string) (domain.Item, error) {
	it, err := s.Store.Items().GetItemByID(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if !actor.Superuser && it.OwnerID != actor.ID {
		return domain.Item{}, ErrInsufficientPrivilege
	}
	return it, nil
}

// ListItems returns a page of items plus the total count. Superusers list
// across all owners.
func (s *ItemService) ListItems(ctx context.Context, actor domain.User, limit, offset int) ([]domain.Item, int, error) {
	if actor.Superuser {
		items, err := s.Store.Items().ListItems(ctx, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		count, err := s.Store.Items().CountItems(ctx)
		if err != nil {
			return nil, 0, err
		}
		return items, count, nil
	}

	items, err := s.Store.Items().ListItemsByOwner(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Store.Items().CountItemsByOwner(ctx, actor.ID)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, actor domain.User, itemID string, upd ItemUpdate) (domain.Item, error) {
	it, err := s.GetItem(ctx, actor, itemID)
	if err != nil {
		return domain.Item{}, err
	}

	title := it.Title
	if upd.Title != nil {
		title, err = validateTitle(*upd.Title)
		if err != nil {
			return domain.Item{}, err
		}
	}
	description := it.Description
	if upd.Description != nil {
		description = *upd.Description
	}

	if err := s.Store.Items().UpdateItem(ctx, itemID, title, description); err != nil {
		return domain.Item{}, err
	}
	return s.Store.Items().GetItemByID(ctx, itemID)
}

func (s *ItemService) DeleteItem(ctx context.Context, actor domain.User, itemID string) error {
	if _, err := s.GetItem(ctx, actor, itemID); err != nil {
		return err
	}
	return s.Store.Items().DeleteItem(ctx, itemID)
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLen {
		return "", ErrInvalidTitle
	}
	return title, nil
}
