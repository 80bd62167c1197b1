package anchor

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	Set(ctx context.Context, input SetInput) (SetOutput, error)
	Resolve(ctx context.Context, input ResolveInput) (ResolveOutput, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Delete(ctx context.Context, userID, name string) error
}
