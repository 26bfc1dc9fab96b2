package auth

import (
	"fmt"
	"io"
	"strings"

	"unsplashdl/pkg/logger"
)

const (
	accessKeyPrompt = "Enter your Unsplash Access Key:"
	secretKeyPrompt = "Enter your Unsplash Secret Key:"
)

// Provisioner collects credentials from the operator and stores them
type Provisioner struct {
	store    CredentialStore
	prompter Prompter
	out      io.Writer
	logger   logger.Logger
}

// NewProvisioner creates a provisioner. out receives validation messages.
func NewProvisioner(store CredentialStore, prompter Prompter, out io.Writer, log logger.Logger) *Provisioner {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logger.GetLogger()
	}

	return &Provisioner{
		store:    store,
		prompter: prompter,
		out:      out,
		logger:   log,
	}
}

// Provision asks for the access key, then the secret key, and saves both.
// Empty answers are rejected and asked again.
func (p *Provisioner) Provision() (*Credentials, error) {
	accessKey, err := p.askRequired(accessKeyPrompt, "Access Key is required", false)
	if err != nil {
		p.logger.WithError(err).Error("Failed to read access key")
		return nil, &ProvisioningError{Op: "prompt", Err: err}
	}

	secretKey, err := p.askRequired(secretKeyPrompt, "Secret Key is required", true)
	if err != nil {
		p.logger.WithError(err).Error("Failed to read secret key")
		return nil, &ProvisioningError{Op: "prompt", Err: err}
	}

	creds := &Credentials{
		AccessKey: accessKey,
		SecretKey: secretKey,
	}

	if err := p.store.Save(creds); err != nil {
		p.logger.WithError(err).Error("Failed to save credentials")
		return nil, &ProvisioningError{Op: "save", Err: err}
	}

	p.logger.Info("Credentials saved")
	fmt.Fprintln(p.out, "Configuration saved successfully!")

	return creds, nil
}

func (p *Provisioner) askRequired(label, requiredMsg string, secret bool) (string, error) {
	for {
		answer, err := p.prompter.Ask(label, secret)
		if err != nil {
			return "", err
		}

		answer = strings.TrimSpace(answer)
		if answer != "" {
			return answer, nil
		}

		fmt.Fprintf(p.out, ">> %s\n", requiredMsg)
	}
}
