// cmd/smartheater/connect_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/smartheater/internal/session"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configPath, portName, baudRate, address, verbose, simulate = "", "", 0, 0, false, false
	t.Cleanup(func() {
		configPath, portName, baudRate, address, verbose, simulate = "", "", 0, 0, false, false
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	resetFlags(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint8(247), cfg.Device.Address)
	assert.Equal(t, 19200, cfg.Link.Baud)
	assert.Equal(t, "N", cfg.Link.Parity)
}

func TestLoadConfigOverrides(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "heater.yaml")
	require.NoError(t, os.WriteFile(path, []byte("link:\n  endpoint: /dev/ttyS1\n  baud: 9600\n"), 0o644))

	configPath = path
	portName = "tcp://gw:502"
	address = 12

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "tcp://gw:502", cfg.Link.Endpoint)
	assert.Equal(t, 9600, cfg.Link.Baud)
	assert.Equal(t, uint8(12), cfg.Device.Address)
}

func TestLoadConfigInvalid(t *testing.T) {
	resetFlags(t)
	address = 250

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestOpenSessionWithoutEndpoint(t *testing.T) {
	resetFlags(t)

	cfg, err := loadConfig()
	require.NoError(t, err)

	_, _, err = openSession(cfg)
	assert.Error(t, err)
}

func TestWithSessionSimulated(t *testing.T) {
	resetFlags(t)
	simulate = true

	var vendor string
	err := withSession(func(s *session.Session) error {
		var err error
		vendor, err = s.VendorName()
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "E.G.O.", vendor)
}
