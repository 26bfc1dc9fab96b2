package auth

import (
	"errors"
	"fmt"
)

// Credentials holds the Unsplash API key pair
type Credentials struct {
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
}

// Validate reports whether both keys are present
func (c *Credentials) Validate() error {
	var errs []error
	if c.AccessKey == "" {
		errs = append(errs, errors.New("access key is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	return errors.Join(errs...)
}

// Errors
var (
	// ErrCredentialsNotFound signals that no credential file exists yet
	ErrCredentialsNotFound = errors.New("credentials not found")

	// ErrMalformedCredentials is wrapped by ReadError when the file parses badly or lacks a key
	ErrMalformedCredentials = errors.New("malformed credentials")

	// ErrNotInteractive is returned by prompters that have no usable input channel
	ErrNotInteractive = errors.New("input is not an interactive terminal")
)

// ReadError reports a credential file that exists but cannot be used
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read credentials from %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ProvisioningError reports a failure to collect or persist credentials
type ProvisioningError struct {
	Op  string
	Err error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("credential setup failed (%s): %v", e.Op, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// MaskCredentials creates a copy of the credentials with secrets masked
func MaskCredentials(c *Credentials) *Credentials {
	if c == nil {
		return nil
	}

	return &Credentials{
		AccessKey: maskString(c.AccessKey),
		SecretKey: maskString(c.SecretKey),
	}
}

// maskString masks all but the first 4 and last 4 characters of a string
func maskString(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
