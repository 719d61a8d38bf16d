package binding

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/logbridge"
)

func TestInit_VerbosityFromEnv(t *testing.T) {
	t.Setenv(logbridge.VerbosityEnv, "info")

	x, err := Init(Config{Executor: logbridge.ExecutorFunc(func(func()) error { return nil }), EngineWriter: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, logbridge.SeverityInfo, x.Engine().Gate().Threshold())
	assert.Same(t, x.Engine().Gate(), x.Bridge().Gate())

	t.Setenv(logbridge.VerbosityEnv, "chatty")
	_, err = Init(Config{Executor: logbridge.ExecutorFunc(func(func()) error { return nil })})
	assert.ErrorIs(t, err, logbridge.ErrInvalidSeverity)
}

func TestExports_SetLogVerbosity(t *testing.T) {
	t.Setenv(logbridge.VerbosityEnv, "")
	x, err := Init(Config{Executor: logbridge.ExecutorFunc(func(func()) error { return nil })})
	require.NoError(t, err)
	assert.Equal(t, logbridge.DefaultThreshold, x.Engine().Gate().Threshold())

	require.NoError(t, x.SetLogVerbosity(LogVerbosity["DEBUG"]))
	assert.Equal(t, logbridge.SeverityDebug, x.Engine().Gate().Threshold())
	assert.ErrorIs(t, x.SetLogVerbosity(17), logbridge.ErrInvalidSeverity)
	assert.Equal(t, logbridge.SeverityDebug, x.Engine().Gate().Threshold())
}

func TestExports_DefaultLoggerCallbackOnOwnedLoop(t *testing.T) {
	t.Setenv(logbridge.VerbosityEnv, "debug")
	var out bytes.Buffer
	x, err := Init(Config{EngineWriter: &out})
	require.NoError(t, err)

	x.Engine().Log("server.cc", 1, logbridge.SeverityInfo, "before")
	require.Contains(t, out.String(), "before")

	require.ErrorIs(t, x.SetDefaultLoggerCallback(nil), logbridge.ErrNilCallback)

	got := make(chan string, 3)
	require.NoError(t, x.SetDefaultLoggerCallback(logbridge.FuncCallback(
		func(file string, line uint32, severity, message string, _ int64) {
			got <- severity + " " + message
		})))
	assert.Equal(t, logbridge.StateInstalled, x.Bridge().State())

	x.Engine().Log("server.cc", 2, logbridge.SeverityInfo, "m1")
	x.Engine().Log("server.cc", 3, logbridge.SeverityError, "m2")
	x.Engine().Log("server.cc", 4, logbridge.SeverityDebug, "m3")

	for _, want := range []string{"INFO m1", "ERROR m2", "DEBUG m3"} {
		select {
		case g := <-got:
			assert.Equal(t, want, g)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
	assert.NotContains(t, out.String(), "m1")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, x.Shutdown(ctx))
}

func TestExports_CloseTwice(t *testing.T) {
	x, err := Init(Config{EngineWriter: &bytes.Buffer{}})
	require.NoError(t, err)
	require.NoError(t, x.Close())

	done := make(chan error, 1)
	go func() { done <- x.Close() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("second Close did not return")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, x.Shutdown(ctx))
}

func TestTables(t *testing.T) {
	all := Tables()
	require.Len(t, all, 7)
	assert.Equal(t, uint32(0), Status["OK"])
	assert.Equal(t, uint32(4), Status["DEADLINE_EXCEEDED"])
	assert.Equal(t, uint32(16), Status["UNAUTHENTICATED"])
	assert.Equal(t, uint32(4), ConnectivityState["FATAL_FAILURE"])
	assert.Equal(t, uint32(0xffff), Propagate["DEFAULTS"])
	assert.Equal(t, map[string]uint32{"DEBUG": 0, "INFO": 1, "ERROR": 2}, map[string]uint32(all["logVerbosity"]))
}

func TestMetadataValidators(t *testing.T) {
	assert.True(t, MetadataKeyIsLegal("x-request-id"))
	assert.True(t, MetadataKeyIsLegal("grpc.timeout_ms"))
	assert.False(t, MetadataKeyIsLegal(""))
	assert.False(t, MetadataKeyIsLegal("X-Upper"))
	assert.False(t, MetadataKeyIsLegal("sp ace"))

	assert.True(t, MetadataNonbinValueIsLegal("plain value ~"))
	assert.True(t, MetadataNonbinValueIsLegal(""))
	assert.False(t, MetadataNonbinValueIsLegal("tab\there"))
	assert.False(t, MetadataNonbinValueIsLegal("caf\xc3\xa9"))

	assert.True(t, MetadataKeyIsBinary("trace-bin"))
	assert.False(t, MetadataKeyIsBinary("trace"))
}

func TestRootsOverride(t *testing.T) {
	x, err := Init(Config{Executor: logbridge.ExecutorFunc(func(func()) error { return nil })})
	require.NoError(t, err)

	_, ok := x.RootsOverride()
	assert.False(t, ok)
	_, err = x.CertPool()
	assert.ErrorIs(t, err, ErrNoRootsOverride)

	x.SetDefaultRootsPem("")
	_, ok = x.RootsOverride()
	assert.False(t, ok)

	x.SetDefaultRootsPem("not a certificate")
	_, err = x.CertPool()
	assert.ErrorIs(t, err, ErrInvalidRoots)

	root := selfSignedPEM(t)
	x.SetDefaultRootsPem(root)
	got, ok := x.RootsOverride()
	require.True(t, ok)
	assert.Equal(t, root, string(got))
	pool, err := x.CertPool()
	require.NoError(t, err)
	assert.NotNil(t, pool)
}

func selfSignedPEM(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test root"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}
