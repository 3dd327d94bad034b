// Package awserr maps AWS SDK errors onto the domain error taxonomy.
package awserr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// Map wraps an AWS error with the matching domain sentinel. Errors
// without an API response (DNS, connection reset, timeout) map to
// ErrTransient; unknown API codes pass through unchanged.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}

	code := apiErr.ErrorCode()
	switch code {
	case "UnrecognizedClientException", "InvalidClientTokenId", "SignatureDoesNotMatch",
		"AccessDenied", "AccessDeniedException", "ExpiredToken", "MissingAuthenticationToken",
		"AuthFailure":
		return fmt.Errorf("%w: %s", domain.ErrAuthentication, apiErr.ErrorMessage())
	case "Throttling", "ThrottlingException", "TooManyRequestsException", "RequestLimitExceeded":
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.ErrorMessage())
	case "ResourceNotFoundException", "InvalidParameterValue":
		// Beanstalk reports unknown environment names as InvalidParameterValue.
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.ErrorMessage())
	}
	// EC2 not-found codes look like InvalidInstanceID.NotFound.
	if strings.HasSuffix(code, ".NotFound") {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.ErrorMessage())
	}
	return err
}
