package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
)

type RepositoryAPI interface {
	CountStudents(ctx context.Context, scope auth.Scope) (int, error)
	CountCompanies(ctx context.Context) (int, error)
	CountInternshipsByStatus(ctx context.Context, scope auth.Scope) ([]StatusCount, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Stats runs the aggregates concurrently. An empty scope still reports the
// company count, which every role may see.
func (s *Service) Stats(ctx context.Context, scope auth.Scope) (*Stats, error) {
	stats := &Stats{Scope: scope.Kind}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountCompanies(gctx)
		if err != nil {
			return err
		}
		stats.Companies = n
		return nil
	})

	if !scope.Empty() {
		g.Go(func() error {
			n, err := s.repo.CountStudents(gctx, scope)
			if err != nil {
				return err
			}
			stats.Students = n
			return nil
		})

		g.Go(func() error {
			rows, err := s.repo.CountInternshipsByStatus(gctx, scope)
			if err != nil {
				return err
			}
			for _, row := range rows {
				stats.Internships.add(row.Status, row.Count)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to compute dashboard stats", "scope", scope.Kind, "error", err)
		return nil, internal.NewInternalError("failed to compute statistics", err)
	}
	return stats, nil
}
