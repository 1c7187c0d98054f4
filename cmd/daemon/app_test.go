//go:build test_unit

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	machinetalk "github.com/machinekit/go-machinetalk"
	"github.com/machinekit/go-machinetalk/zeroconf"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AppSuite struct {
	suite.Suite

	registrar *zeroconf.MockRegistrar
	group     *zeroconf.MockEntryGroup

	app  *App
	http *httptest.Server

	cancel context.CancelFunc
	done   chan error
}

func (suite *AppSuite) SetupTest() {
	suite.registrar = zeroconf.NewMockRegistrar(suite.T())
	suite.group = zeroconf.NewMockEntryGroup(suite.T())

	cfg := &Config{
		ZeroconfBackend: "mock",
		Service:         ServiceConfig{Type: "config", Port: 5000, DSN: "tcp://myhost:5000"},
	}

	service, err := zeroconf.NewService(&machinetalk.NullLogger{}, suite.registrar, cfg.Service.options("a42c8c6b-4025-4f83-ba28-dad21114744a"))
	suite.Require().NoError(err)

	suite.app = &App{cfg: cfg, registrar: suite.registrar, service: service}
	suite.app.server, _ = NewStubApiServer()
	suite.http = httptest.NewServer(suite.app.server.handler())

	suite.registrar.EXPECT().HostNameFqdn(mock.Anything).Return("myhost.local", nil)
	suite.group.EXPECT().AddService(mock.Anything, mock.Anything).Return(nil)
	suite.group.EXPECT().AddServiceSubtype(mock.Anything, mock.Anything, "_config._sub._machinekit._tcp").Return(nil)
	suite.group.EXPECT().Commit(mock.Anything).Return(nil)
}

func (suite *AppSuite) TearDownTest() {
	suite.http.Close()
}

func (suite *AppSuite) run() {
	var ctx context.Context
	ctx, suite.cancel = context.WithCancel(context.Background())
	suite.done = make(chan error, 1)
	go func() { suite.done <- suite.app.Run(ctx) }()

	suite.Eventually(func() bool {
		return suite.app.service.State() == zeroconf.StatePublished
	}, time.Second, 5*time.Millisecond)
}

func (suite *AppSuite) stop() error {
	suite.cancel()
	select {
	case err := <-suite.done:
		return err
	case <-time.After(time.Second):
		suite.FailNow("app did not stop")
		return nil
	}
}

func (suite *AppSuite) request(method, path string) (*http.Response, *ApiResponseStatus) {
	req, err := http.NewRequest(method, suite.http.URL+path, nil)
	suite.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	var status ApiResponseStatus
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))
	return resp, &status
}

func (suite *AppSuite) TestPublishedOnRun() {
	suite.registrar.EXPECT().EntryGroupNew(mock.Anything).Return(suite.group, nil).Once()
	suite.group.EXPECT().Reset(mock.Anything).Return(nil).Once()
	suite.group.EXPECT().Free(mock.Anything).Return(nil).Once()

	suite.run()

	resp, status := suite.request("GET", "/status")
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("published", status.State)
	suite.Equal("mock", status.Backend)
	suite.Equal(suite.app.service.InstanceId(), status.InstanceId)
	suite.Equal("MK Config on myhost.local", status.Record.Name)
	suite.Contains(status.Record.Text, "dsn=tcp://myhost:5000")

	// shutdown retracts the service
	suite.NoError(suite.stop())
	suite.Equal(zeroconf.StateUnpublished, suite.app.service.State())
}

func (suite *AppSuite) TestUnpublishAndRepublish() {
	suite.registrar.EXPECT().EntryGroupNew(mock.Anything).Return(suite.group, nil).Twice()
	suite.group.EXPECT().Reset(mock.Anything).Return(nil).Twice()
	suite.group.EXPECT().Free(mock.Anything).Return(nil).Twice()

	suite.run()

	resp, status := suite.request("POST", "/unpublish")
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("unpublished", status.State)

	resp, _ = suite.request("POST", "/unpublish")
	suite.Equal(http.StatusConflict, resp.StatusCode)

	resp, status = suite.request("POST", "/publish")
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("published", status.State)

	resp, _ = suite.request("POST", "/publish")
	suite.Equal(http.StatusConflict, resp.StatusCode)

	suite.NoError(suite.stop())
}

func (suite *AppSuite) TestMethodNotAllowed() {
	suite.registrar.EXPECT().EntryGroupNew(mock.Anything).Return(suite.group, nil).Once()
	suite.group.EXPECT().Reset(mock.Anything).Return(nil).Once()
	suite.group.EXPECT().Free(mock.Anything).Return(nil).Once()

	suite.run()

	resp, _ := suite.request("POST", "/status")
	suite.Equal(http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = suite.request("GET", "/publish")
	suite.Equal(http.StatusMethodNotAllowed, resp.StatusCode)

	suite.NoError(suite.stop())
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}
