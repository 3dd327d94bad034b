package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// mockAddressManager is a test double for domain.AddressManager.
type mockAddressManager struct {
	interfaceErr error
	allocErr     error
	associateErr error
	interfaceID  string
	allocationID string
	associations [][2]string
}

func (m *mockAddressManager) InstanceNetworkInterface(_ context.Context, _ string) (string, error) {
	return m.interfaceID, m.interfaceErr
}

func (m *mockAddressManager) AddressAllocation(_ context.Context, _ string) (string, error) {
	return m.allocationID, m.allocErr
}

func (m *mockAddressManager) AssociateAddress(_ context.Context, allocationID, interfaceID string) (string, error) {
	if m.associateErr != nil {
		return "", m.associateErr
	}
	m.associations = append(m.associations, [2]string{allocationID, interfaceID})
	return "eipassoc-1", nil
}

func TestAssignAddress_Execute_Associates(t *testing.T) {
	addresses := &mockAddressManager{interfaceID: "eni-1", allocationID: "eipalloc-1"}
	uc := NewAssignAddress(addresses)

	out, err := uc.Execute(context.Background(), AssignAddressInput{Environment: "PROJ123"})

	require.NoError(t, err)
	assert.Equal(t, "eipassoc-1", out.AssociationID)
	assert.Equal(t, "eipalloc-1", out.AllocationID)
	assert.Equal(t, "eni-1", out.NetworkInterfaceID)
	assert.Equal(t, [][2]string{{"eipalloc-1", "eni-1"}}, addresses.associations)
}

func TestAssignAddress_Execute_EmptyEnvironment(t *testing.T) {
	uc := NewAssignAddress(&mockAddressManager{})

	_, err := uc.Execute(context.Background(), AssignAddressInput{})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssignAddress_Execute_NoRunningInstance(t *testing.T) {
	addresses := &mockAddressManager{interfaceErr: domain.ErrInstanceNotFound}
	uc := NewAssignAddress(addresses)

	_, err := uc.Execute(context.Background(), AssignAddressInput{Environment: "PROJ123"})

	require.ErrorIs(t, err, domain.ErrInstanceNotFound)
	assert.Empty(t, addresses.associations)
}

func TestAssignAddress_Execute_NoTaggedAddress(t *testing.T) {
	addresses := &mockAddressManager{interfaceID: "eni-1", allocErr: domain.ErrAddressNotFound}
	uc := NewAssignAddress(addresses)

	_, err := uc.Execute(context.Background(), AssignAddressInput{Environment: "PROJ123"})

	require.ErrorIs(t, err, domain.ErrAddressNotFound)
	assert.Empty(t, addresses.associations)
}
