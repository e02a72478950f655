package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmarket/client/core/pinning"
	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/client/pkg/config"
	"github.com/weisyn/nftmarket/client/pkg/ux/ui"
)

// testConfig HTTP 节点地址只在发起调用时才会连接
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := config.DefaultConfig()
	c.RPCURL = "http://127.0.0.1:1"
	c.KeystoreDir = t.TempDir()
	c.Log.FilePath = ""
	c.Log.ToConsole = false
	return c
}

func TestBootstrapApp_ServesAndStops(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := BootstrapApp(
		WithConfig(testConfig(t)),
		WithListenAddr("127.0.0.1:0"),
		WithRegistry(reg),
	)
	require.NoError(t, err)

	require.NotNil(t, a.Controller())
	assert.Nil(t, a.Controller().Session())

	resp, err := http.Get("http://" + a.Addr() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")

	resp, err = http.Get("http://" + a.Addr() + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, a.Stop())
}

func TestBootstrapApp_InvalidConfig(t *testing.T) {
	c := testConfig(t)
	c.ContractAddress = "not-an-address"

	_, err := BootstrapApp(WithConfig(c))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWait_StopsOnCancel(t *testing.T) {
	a, err := BootstrapApp(WithConfig(testConfig(t)), WithListenAddr("127.0.0.1:0"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Wait(ctx))
}

func TestNewOptions_Defaults(t *testing.T) {
	o := newOptions()
	assert.NotNil(t, o.config)
	assert.NotNil(t, o.registry)
	assert.Equal(t, o.config.ListenAddr, o.listenAddr)
	assert.NotNil(t, o.approver)
	assert.False(t, o.enableWatch)
}

func TestProviderOptions_Prompter(t *testing.T) {
	c := testConfig(t)
	opts := ProviderOptions(c)
	assert.IsType(t, ui.TermPrompter{}, opts.Prompter)

	c.Password = "secret"
	opts = ProviderOptions(c)
	assert.Equal(t, wallet.StaticPassphrase("secret"), opts.Prompter)
	assert.Equal(t, c.KeystoreDir, opts.KeystoreDir)
}

func TestNewConnector_NoProvider(t *testing.T) {
	conn := NewConnector(testConfig(t), nil, wallet.AutoApprove)
	_, err := conn.Connect(context.Background())
	assert.True(t, errors.Is(err, wallet.ErrProviderUnavailable))
}

func TestNewGateway_UsesConfig(t *testing.T) {
	c := testConfig(t)
	c.GatewayURL = "https://ipfs.example.org/ipfs"
	gw := NewGateway(c)
	assert.Equal(t, pinning.NewGateway("https://ipfs.example.org/ipfs").Base(), gw.Base())
}

func TestWatchActivity_RequiresWSURL(t *testing.T) {
	err := WatchActivity(context.Background(), testConfig(t), nil, nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
