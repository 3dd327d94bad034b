// Package ec2addr implements the address manager port: associating
// tagged elastic IPs with the instance behind an environment.
package ec2addr

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/awserr"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/retry"
)

// API is the subset of the EC2 client used here.
type API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	AssociateAddress(ctx context.Context, params *ec2.AssociateAddressInput, optFns ...func(*ec2.Options)) (*ec2.AssociateAddressOutput, error)
}

// Ensure Client implements domain.AddressManager.
var _ domain.AddressManager = (*Client)(nil)

// Client adapts the EC2 API to the AddressManager port.
type Client struct {
	api API
}

// NewClient creates a Client from an AWS SDK configuration.
func NewClient(cfg aws.Config) *Client {
	return &Client{api: ec2.NewFromConfig(cfg)}
}

// NewClientWithAPI creates a Client with a custom API implementation.
// This is useful for testing.
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// InstanceNetworkInterface returns the primary network interface ID of
// the running instance tagged with the environment name.
func (c *Client) InstanceNetworkInterface(ctx context.Context, envName string) (string, error) {
	var out *ec2.DescribeInstancesOutput
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var callErr error
		out, callErr = c.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			Filters: []ec2types.Filter{
				{Name: aws.String("tag:Name"), Values: []string{envName}},
				{Name: aws.String("instance-state-name"), Values: []string{"running"}},
			},
		})
		return awserr.Map(callErr)
	})
	if err != nil {
		return "", fmt.Errorf("describe instances: %w", err)
	}

	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			if len(instance.NetworkInterfaces) > 0 {
				return aws.ToString(instance.NetworkInterfaces[0].NetworkInterfaceId), nil
			}
		}
	}
	return "", fmt.Errorf("environment %s: %w", envName, domain.ErrInstanceNotFound)
}

// AddressAllocation returns the allocation ID of the elastic IP tagged
// with the environment name.
func (c *Client) AddressAllocation(ctx context.Context, envName string) (string, error) {
	var out *ec2.DescribeAddressesOutput
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var callErr error
		out, callErr = c.api.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
			Filters: []ec2types.Filter{
				{Name: aws.String("tag:Name"), Values: []string{envName}},
			},
		})
		return awserr.Map(callErr)
	})
	if err != nil {
		return "", fmt.Errorf("describe addresses: %w", err)
	}

	if len(out.Addresses) == 0 {
		return "", fmt.Errorf("environment %s: %w", envName, domain.ErrAddressNotFound)
	}
	return aws.ToString(out.Addresses[0].AllocationId), nil
}

// AssociateAddress attaches the allocation to the network interface,
// reassociating if it is already attached elsewhere.
func (c *Client) AssociateAddress(ctx context.Context, allocationID, interfaceID string) (string, error) {
	var out *ec2.AssociateAddressOutput
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var callErr error
		out, callErr = c.api.AssociateAddress(ctx, &ec2.AssociateAddressInput{
			AllocationId:       aws.String(allocationID),
			NetworkInterfaceId: aws.String(interfaceID),
			AllowReassociation: aws.Bool(true),
		})
		return awserr.Map(callErr)
	})
	if err != nil {
		return "", fmt.Errorf("associate address: %w", err)
	}
	return aws.ToString(out.AssociationId), nil
}
