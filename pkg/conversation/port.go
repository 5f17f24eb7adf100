package conversation

import "context"

// Store is the registry of live conversations.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*State, error)
	Count(ctx context.Context) (int, error)
}
