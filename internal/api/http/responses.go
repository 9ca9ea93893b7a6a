package http

import (
	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/pkg/apisdk"
)

func toUserResponse(u domain.User) apisdk.User {
	return apisdk.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Active:    u.Active,
		Superuser: u.Superuser,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUsersPage(users []domain.User, count int) apisdk.UsersPage {
	out := make([]apisdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return apisdk.UsersPage{Users: out, Count: count}
}

func toItemResponse(it domain.Item) apisdk.Item {
	return apisdk.Item{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toItemsPage(items []domain.Item, count int) apisdk.ItemsPage {
	out := make([]apisdk.Item, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return apisdk.ItemsPage{Items: out, Count: count}
}
