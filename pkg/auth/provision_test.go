package auth

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unsplashdl/pkg/logger"
)

func TestProvisionSavesCredentials(t *testing.T) {
	store := NewMockStore()
	prompter := NewScriptedPrompter("my-access", "my-secret")
	var out bytes.Buffer

	creds, err := NewProvisioner(store, prompter, &out, logger.NewNopLogger()).Provision()
	require.NoError(t, err)

	assert.Equal(t, "my-access", creds.AccessKey)
	assert.Equal(t, "my-secret", creds.SecretKey)
	assert.Equal(t, creds, store.Stored())
	assert.Equal(t, []string{accessKeyPrompt, secretKeyPrompt}, prompter.Asked())
	assert.Contains(t, out.String(), "Configuration saved successfully!")
}

func TestProvisionRepromptsOnEmptyInput(t *testing.T) {
	store := NewMockStore()
	prompter := NewScriptedPrompter("", "   ", "key", "", "secret")
	var out bytes.Buffer

	creds, err := NewProvisioner(store, prompter, &out, logger.NewNopLogger()).Provision()
	require.NoError(t, err)

	assert.Equal(t, &Credentials{AccessKey: "key", SecretKey: "secret"}, creds)

	// Validation happens per prompt, before moving on to the next key
	assert.Equal(t, []string{
		accessKeyPrompt, accessKeyPrompt, accessKeyPrompt,
		secretKeyPrompt, secretKeyPrompt,
	}, prompter.Asked())
	assert.Equal(t, 2, strings.Count(out.String(), "Access Key is required"))
	assert.Equal(t, 1, strings.Count(out.String(), "Secret Key is required"))
}

func TestProvisionTrimsWhitespace(t *testing.T) {
	store := NewMockStore()

	creds, err := NewProvisioner(store, NewScriptedPrompter("  key \r", "\tsecret"), nil, logger.NewNopLogger()).Provision()
	require.NoError(t, err)
	assert.Equal(t, "key", creds.AccessKey)
	assert.Equal(t, "secret", creds.SecretKey)
}

func TestProvisionInputUnavailable(t *testing.T) {
	store := NewMockStore()

	// Only the access key is answered; the secret prompt hits EOF
	_, err := NewProvisioner(store, NewScriptedPrompter("key"), nil, logger.NewNopLogger()).Provision()

	var provErr *ProvisioningError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "prompt", provErr.Op)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, store.SaveCalls, "nothing is saved when input fails")
}

type failingPrompter struct{ err error }

func (p failingPrompter) Ask(string, bool) (string, error) { return "", p.err }

func TestProvisionNotInteractive(t *testing.T) {
	store := NewMockStore()

	_, err := NewProvisioner(store, failingPrompter{err: ErrNotInteractive}, nil, logger.NewNopLogger()).Provision()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Nil(t, store.Stored())
}

func TestProvisionSaveFailure(t *testing.T) {
	store := NewMockStore()
	store.SaveError = errors.New("read-only filesystem")

	_, err := NewProvisioner(store, NewScriptedPrompter("a", "s"), nil, logger.NewNopLogger()).Provision()

	var provErr *ProvisioningError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "save", provErr.Op)
	assert.Contains(t, err.Error(), "read-only filesystem")
}

func TestProvisionWithFileStore(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := NewProvisioner(store, NewScriptedPrompter("file-access", "file-secret"), nil, logger.NewNopLogger()).Provision()
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "file-access", loaded.AccessKey)
}

func TestShowCredentialGuide(t *testing.T) {
	var buf bytes.Buffer
	ShowCredentialGuide(&buf)
	assert.Contains(t, buf.String(), DevelopersURL)
	assert.Contains(t, buf.String(), "Access Key and Secret Key")
}
