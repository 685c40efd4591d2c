package common

import "context"

// BaseRepositoryInterface defines the CRUD surface shared by entity repositories.
type BaseRepositoryInterface[T any, K ID] interface {
	Add(ctx context.Context, entity *T) (*T, error)
	AddMany(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id K) error
	DeleteEntity(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id K) (*T, bool, error)
	Exists(ctx context.Context, id K) (bool, error)
}
