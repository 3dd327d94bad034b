package usecase

import (
	"context"
	"fmt"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// AssignAddressInput contains the parameters for associating an elastic
// IP with an environment's instance.
type AssignAddressInput struct {
	Environment string
}

// AssignAddressOutput contains the result of the association.
type AssignAddressOutput struct {
	AssociationID      string
	AllocationID       string
	NetworkInterfaceID string
}

// AssignAddress is the use case for re-attaching the elastic IP tagged
// for an environment after the environment is rebuilt. Triggered by the
// external "environment ready" event rule.
type AssignAddress struct {
	addresses domain.AddressManager
}

// NewAssignAddress creates a new AssignAddress use case.
func NewAssignAddress(addresses domain.AddressManager) *AssignAddress {
	return &AssignAddress{addresses: addresses}
}

// Execute looks up the instance and the tagged address and associates
// them. All three calls target a single environment, so any failure is
// the failure of the run.
func (uc *AssignAddress) Execute(ctx context.Context, in AssignAddressInput) (*AssignAddressOutput, error) {
	if in.Environment == "" {
		return nil, fmt.Errorf("%w: environment name is required", domain.ErrValidation)
	}

	interfaceID, err := uc.addresses.InstanceNetworkInterface(ctx, in.Environment)
	if err != nil {
		return nil, err
	}
	allocationID, err := uc.addresses.AddressAllocation(ctx, in.Environment)
	if err != nil {
		return nil, err
	}
	associationID, err := uc.addresses.AssociateAddress(ctx, allocationID, interfaceID)
	if err != nil {
		return nil, err
	}

	return &AssignAddressOutput{
		AssociationID:      associationID,
		AllocationID:       allocationID,
		NetworkInterfaceID: interfaceID,
	}, nil
}
