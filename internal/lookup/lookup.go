// Package lookup fetches a member profile by national ID from the external
// membership service.
package lookup

import (
	"context"
	"errors"

	"github.com/medic/supportbot/internal/models"
)

// ErrNotFound means the service answered but had no record for the ID.
var ErrNotFound = errors.New("member not found")

type Client interface {
	LookupByNationalID(ctx context.Context, nationalID string) (models.Profile, error)
}

// Func adapts a plain function to Client.
type Func func(ctx context.Context, nationalID string) (models.Profile, error)

func (f Func) LookupByNationalID(ctx context.Context, nationalID string) (models.Profile, error) {
	return f(ctx, nationalID)
}
