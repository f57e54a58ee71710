package certs

import (
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateGeneratesCertificate(t *testing.T) {
	m := NewManager(t.TempDir())

	cert, err := m.GetOrCreate()
	require.NoError(t, err)
	require.NotEmpty(t, cert.Certificate)

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, "localhost", leaf.Subject.CommonName)
	assert.Contains(t, leaf.DNSNames, "localhost")
	assert.True(t, leaf.NotAfter.After(time.Now()))
}

func TestGetOrCreateReusesExisting(t *testing.T) {
	m := NewManager(t.TempDir())

	first, err := m.GetOrCreate()
	require.NoError(t, err)
	second, err := m.GetOrCreate()
	require.NoError(t, err)

	assert.Equal(t, first.Certificate[0], second.Certificate[0])
}

func TestSeparateDirsGetSeparateCerts(t *testing.T) {
	a, err := NewManager(t.TempDir()).GetOrCreate()
	require.NoError(t, err)
	b, err := NewManager(t.TempDir()).GetOrCreate()
	require.NoError(t, err)

	assert.NotEqual(t, a.Certificate[0], b.Certificate[0])
}
