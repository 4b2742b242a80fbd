package service

import (
	"context"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/repository"
)

type catalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListTools(ctx context.Context, page, pageSize int32) ([]domain.Tool, int32, error) {
	return s.store.Tools().List(ctx, page, pageSize)
}

func (s *catalogService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	return s.store.Tools().GetByID(ctx, id)
}

func (s *catalogService) ListReagents(ctx context.Context, page, pageSize int32) ([]domain.Reagent, int32, error) {
	return s.store.Reagents().List(ctx, page, pageSize)
}

func (s *catalogService) GetReagent(ctx context.Context, id int32) (*domain.Reagent, error) {
	return s.store.Reagents().GetByID(ctx, id)
}
