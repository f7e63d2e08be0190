package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/packdash/backend-go/internal/cache"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

type ClientService struct {
	repo  repository.ClientRepository
	cache cache.InsightCache
	now   Clock
}

func NewClientService(repo repository.ClientRepository, cacheImpl cache.InsightCache, clock Clock) *ClientService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopInsightCache()
	}
	if clock == nil {
		clock = SystemClock
	}
	return &ClientService{repo: repo, cache: cacheImpl, now: clock}
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, input domain.Client) (*domain.Client, error) {
	client := normalizeClient(input)
	if err := validateClient(client); err != nil {
		return nil, err
	}

	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	client.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, &client); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	log.Info().Str("client_id", client.ID).Str("name", client.DisplayName()).Msg("client created")
	return &client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, input domain.Client) (*domain.Client, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	client := normalizeClient(input)
	if err := validateClient(client); err != nil {
		return nil, err
	}
	client.ID = existing.ID
	client.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, &client); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	return &client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	log.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

func (s *ClientService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("clients: cache invalidation failed")
	}
}

func normalizeClient(c domain.Client) domain.Client {
	c.Nom = strings.TrimSpace(c.Nom)
	c.Prenom = strings.TrimSpace(c.Prenom)
	c.NomEntreprise = strings.TrimSpace(c.NomEntreprise)
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	c.Telephone = strings.TrimSpace(c.Telephone)
	c.CodePostal = strings.TrimSpace(c.CodePostal)
	c.Rue = strings.TrimSpace(c.Rue)
	c.Ville = strings.TrimSpace(c.Ville)
	return c
}

func validateClient(c domain.Client) error {
	if c.Nom == "" {
		return fmt.Errorf("%w: nom is required", domain.ErrInvalidInput)
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email %q is not valid", domain.ErrInvalidInput, c.Email)
	}
	return nil
}
