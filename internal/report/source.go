package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
)

// Collections is the raw data the dashboard derives everything from.
type Collections struct {
	Projects    []project.Project
	Demands     []demand.Demand
	Entries     []demand.TimeEntry
	Consultants []consultant.Consultant
}

// Source supplies the dashboard collections. Live reads come from the
// store; a Fixture source backs tests and the failed-fetch fallback, keeping
// both paths symmetric.
type Source interface {
	Collect(ctx context.Context) (Collections, error)
}

// LiveSource reads every collection from the repositories. The four fetches
// are independent, so they run in parallel and join before composition.
type LiveSource struct {
	projects    project.Repository
	demands     demand.Repository
	consultants consultant.Repository
}

// NewLiveSource creates a repository-backed source.
func NewLiveSource(projects project.Repository, demands demand.Repository, consultants consultant.Repository) *LiveSource {
	return &LiveSource{
		projects:    projects,
		demands:     demands,
		consultants: consultants,
	}
}

// Collect fetches all collections, failing if any fetch fails.
func (s *LiveSource) Collect(ctx context.Context) (Collections, error) {
	var cols Collections

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.projects.List(ctx, project.ListOptions{})
		if err != nil {
			return fmt.Errorf("fetching projects: %w", err)
		}
		cols.Projects = projects
		return nil
	})
	g.Go(func() error {
		demands, err := s.demands.List(ctx, demand.ListOptions{})
		if err != nil {
			return fmt.Errorf("fetching demands: %w", err)
		}
		cols.Demands = demands
		return nil
	})
	g.Go(func() error {
		entries, err := s.demands.ListEntries(ctx, demand.EntryListOptions{})
		if err != nil {
			return fmt.Errorf("fetching time entries: %w", err)
		}
		cols.Entries = entries
		return nil
	})
	g.Go(func() error {
		consultants, err := s.consultants.List(ctx, consultant.ListOptions{})
		if err != nil {
			return fmt.Errorf("fetching consultants: %w", err)
		}
		cols.Consultants = consultants
		return nil
	})

	if err := g.Wait(); err != nil {
		return Collections{}, err
	}
	return cols, nil
}

// FixtureSource returns a canned dataset.
type FixtureSource struct {
	Data Collections
}

// Collect returns the fixture data.
func (s *FixtureSource) Collect(ctx context.Context) (Collections, error) {
	return s.Data, nil
}
