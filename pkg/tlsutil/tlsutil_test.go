package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSelfSignedCert(t *testing.T) {
	dir := t.TempDir()

	paths, err := GenerateSelfSignedCert([]string{"localhost", "127.0.0.1"}, dir)
	require.NoError(t, err)

	for _, p := range []string{paths.CA, paths.CAKey, paths.ServerCert, paths.ServerKey} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), p)
	}

	pair, err := tls.LoadX509KeyPair(paths.ServerCert, paths.ServerKey)
	require.NoError(t, err)
	leaf, err := x509.ParseCertificate(pair.Certificate[0])
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost"}, leaf.DNSNames)
	require.Len(t, leaf.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", leaf.IPAddresses[0].String())

	caPEM, err := os.ReadFile(paths.CA)
	require.NoError(t, err)
	roots := x509.NewCertPool()
	require.True(t, roots.AppendCertsFromPEM(caPEM))
	_, err = leaf.Verify(x509.VerifyOptions{Roots: roots, DNSName: "localhost"})
	require.NoError(t, err)
}

func TestServerAndClientTLSConfig(t *testing.T) {
	paths, err := GenerateSelfSignedCert([]string{"localhost"}, t.TempDir())
	require.NoError(t, err)

	server, err := ServerTLSConfig(paths.ServerCert, paths.ServerKey)
	require.NoError(t, err)
	assert.Equal(t, "tls", server.Info().SecurityProtocol)

	client, err := ClientTLSConfig(paths.CA)
	require.NoError(t, err)
	assert.Equal(t, "tls", client.Info().SecurityProtocol)
}

func TestServerTLSConfig_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := ServerTLSConfig(filepath.Join(dir, "nope.pem"), filepath.Join(dir, "nope-key.pem"))
	require.Error(t, err)
}

func TestClientTLSConfig_BadCA(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(bad, []byte("not a certificate"), 0o600))

	_, err := ClientTLSConfig(bad)
	require.Error(t, err)
}
