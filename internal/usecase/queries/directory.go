package queries

import (
	"context"

	"github.com/google/uuid"

	"kidcheck/internal/pkg/clock"
)

type DirectoryQueries interface {
	ListChildrenOfParent(ctx context.Context, parentID uuid.UUID) ([]*ChildView, error)
	ListActiveServices(ctx context.Context) ([]*ServiceView, error)
}

type DirectoryReadStore interface {
	FindChildrenByParent(ctx context.Context, parentID uuid.UUID) ([]*ChildView, error)
	FindActiveServices(ctx context.Context) ([]*ServiceView, error)
}

type directoryQueriesImpl struct {
	readStore DirectoryReadStore
	clock     clock.Clock
}

func NewDirectoryQueries(readStore DirectoryReadStore, clock clock.Clock) DirectoryQueries {
	return &directoryQueriesImpl{
		readStore: readStore,
		clock:     clock,
	}
}

func (q *directoryQueriesImpl) ListChildrenOfParent(ctx context.Context, parentID uuid.UUID) ([]*ChildView, error) {
	children, err := q.readStore.FindChildrenByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	for _, c := range children {
		c.AgeYears = ageYearsAt(c.BirthDate, now)
	}
	return children, nil
}

func (q *directoryQueriesImpl) ListActiveServices(ctx context.Context) ([]*ServiceView, error) {
	return q.readStore.FindActiveServices(ctx)
}
