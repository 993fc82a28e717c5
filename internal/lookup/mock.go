package lookup

import (
	"context"
	"fmt"

	"github.com/medic/supportbot/internal/models"
	"github.com/medic/supportbot/internal/utils"
)

var (
	mockPlans = []string{"Plan Bronce", "Plan Plata", "Plan Oro"}
	mockNames = []string{"Ana Gómez", "Juan Pérez", "María López", "Carlos Díaz"}
)

// MockClient answers deterministically from a hash of the ID so local runs
// without the membership service still exercise every reply shape. IDs
// ending in "0" are unknown members.
type MockClient struct{}

func (MockClient) LookupByNationalID(ctx context.Context, nationalID string) (models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return models.Profile{}, err
	}
	if nationalID == "" || nationalID[len(nationalID)-1] == '0' {
		return models.Profile{}, ErrNotFound
	}
	h := utils.Hash(nationalID)
	return models.Profile{
		NationalID:     nationalID,
		FullName:       utils.Pick(nationalID, "name", mockNames),
		PlanName:       utils.Pick(nationalID, "plan", mockPlans),
		ContractNumber: fmt.Sprintf("C-%06d", h%1000000),
		IsActive:       models.Bool(h%5 != 0),
	}, nil
}
