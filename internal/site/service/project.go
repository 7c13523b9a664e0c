package service

import (
	"context"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/idx"
)

type ProjectService struct {
	Store store.Store
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.Store.Projects().ListProjects(ctx)
}

func (s *ProjectService) GetByID(ctx context.Context, id string) (domain.Project, error) {
	return s.Store.Projects().GetProjectByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.ID = idx.New().String()
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, p domain.Project) error {
	return s.Store.Projects().UpdateProject(ctx, p)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.Store.Projects().DeleteProject(ctx, id)
}
