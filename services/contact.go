package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

// ContactService serves contacts and the addresses they reference.
type ContactService struct {
	contacts  *repositorycache.Service[models.Contact]
	addresses *repositorycache.Service[models.Address]
}

func NewContactService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *ContactService {
	return &ContactService{
		contacts: newProgenyItemService(db, cacheService, logger, "contact", "contact_id",
			func(c *models.Contact) int { return c.ContactId },
			func(c *models.Contact) int { return c.ProgenyId }),
		addresses: repositorycache.New[models.Address](store.New[models.Address](db), cacheService, repositorycache.Definition[models.Address]{
			Tag:      "address",
			ID:       func(a *models.Address) int { return a.AddressId },
			IDColumn: "address_id",
		}, repositorycache.WithLogger(logger)),
	}
}

func (s *ContactService) GetContact(ctx context.Context, id int) (*models.Contact, error) {
	return s.contacts.Get(ctx, id)
}

func (s *ContactService) GetContactsList(ctx context.Context, progenyID int) ([]*models.Contact, error) {
	return s.contacts.GetList(ctx, progenyID)
}

func (s *ContactService) AddContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	return s.contacts.Add(ctx, contact)
}

func (s *ContactService) UpdateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	return s.contacts.Update(ctx, contact)
}

func (s *ContactService) DeleteContact(ctx context.Context, contact *models.Contact) error {
	return s.contacts.Delete(ctx, contact)
}

func (s *ContactService) GetAddress(ctx context.Context, id int) (*models.Address, error) {
	return s.addresses.Get(ctx, id)
}

func (s *ContactService) AddAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	return s.addresses.Add(ctx, address)
}

func (s *ContactService) UpdateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	return s.addresses.Update(ctx, address)
}

func (s *ContactService) RemoveAddress(ctx context.Context, address *models.Address) error {
	return s.addresses.Delete(ctx, address)
}
