// Package seed loads users and items from a YAML fixture file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"gopkg.in/yaml.v2"
)

type Fixtures struct {
	Users []models.User `yaml:"users"`
	Items []ItemFixture `yaml:"items"`
}

// ItemFixture names its owner by email so files stay independent of ids.
type ItemFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   *bool  `yaml:"available"`
	OwnerEmail  string `yaml:"owner_email"`
}

type Result struct {
	UsersCreated int
	UsersUpdated int
	ItemsCreated int
	ItemsUpdated int
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if len(f.Users) == 0 && len(f.Items) == 0 {
		return nil, errors.New("no users or items in fixtures")
	}
	return &f, nil
}

// Apply upserts users by email, then items by owner and name.
func Apply(ctx context.Context, repo domain.Repository, f *Fixtures) (Result, error) {
	var res Result

	for i := range f.Users {
		u := f.Users[i]
		if strings.TrimSpace(u.Email) == "" || strings.TrimSpace(u.Name) == "" {
			return res, fmt.Errorf("user %d: name and email are required", i+1)
		}

		existing, err := repo.GetUserByEmail(ctx, u.Email)
		switch {
		case err == nil:
			if existing.Name != u.Name {
				existing.Name = u.Name
				if err := repo.UpdateUser(ctx, existing); err != nil {
					return res, fmt.Errorf("update user %s: %w", u.Email, err)
				}
			}
			res.UsersUpdated++
		case errors.Is(err, domain.ErrNotFound):
			if err := repo.CreateUser(ctx, &u); err != nil {
				return res, fmt.Errorf("create user %s: %w", u.Email, err)
			}
			res.UsersCreated++
		default:
			return res, fmt.Errorf("get user %s: %w", u.Email, err)
		}
	}

	for i, it := range f.Items {
		if it.Name == "" {
			continue
		}
		owner, err := repo.GetUserByEmail(ctx, it.OwnerEmail)
		if err != nil {
			return res, fmt.Errorf("item %d (%s): owner %q: %w", i+1, it.Name, it.OwnerEmail, err)
		}

		available := true
		if it.Available != nil {
			available = *it.Available
		}

		owned, err := repo.ListItemsByOwner(ctx, owner.ID, 0, 0)
		if err != nil {
			return res, fmt.Errorf("list items of %s: %w", owner.Email, err)
		}
		if current := findByName(owned, it.Name); current != nil {
			current.Description = it.Description
			current.Available = available
			if err := repo.UpdateItem(ctx, current); err != nil {
				return res, fmt.Errorf("update %s: %w", it.Name, err)
			}
			res.ItemsUpdated++
			continue
		}

		item := &models.Item{
			Name:        it.Name,
			Description: it.Description,
			Available:   available,
			OwnerID:     owner.ID,
		}
		if err := repo.CreateItem(ctx, item); err != nil {
			return res, fmt.Errorf("create %s: %w", it.Name, err)
		}
		res.ItemsCreated++
	}

	return res, nil
}

func findByName(items []*models.Item, name string) *models.Item {
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	return nil
}
