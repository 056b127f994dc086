package cmd

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, cmdMod func(*Server)) (cmd *Server, app *app, port int) {
	port = unusedPort()

	cmd = &Server{}
	cmd.Dates.MonthsBefore = 3
	cmd.Dates.MonthsAfter = 3
	cmd.Web.Listen = fmt.Sprintf("127.0.0.1:%d", port)
	cmd.Web.AdminPasswd = "pass"
	cmd.Web.ReadTimeout = 5 * time.Second
	cmd.Web.ReadHeaderTimeout = 5 * time.Second
	cmd.Web.WriteTimeout = 5 * time.Second
	cmd.Web.IdleTimeout = 30 * time.Second
	cmd.Web.RateLimiter.ReqLimit = 100
	cmd.Web.RateLimiter.LimitWindow = 1 * time.Second
	cmd.Store.Engine = EngineMemory
	if cmdMod != nil {
		cmdMod(cmd)
	}

	var err error
	app, err = cmd.makeApp()
	require.NoError(t, err)

	return cmd, app, port
}

func unusedPort() int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := l.Close(); err != nil {
			panic(err)
		}
	}()

	return l.Addr().(*net.TCPAddr).Port
}

func waitForHTTP(port int) {
	for i := 0; i < 100; i++ {
		time.Sleep(50 * time.Millisecond)
		if resp, err := http.Get(fmt.Sprintf("http://localhost:%d/ping", port)); err == nil {
			resp.Body.Close()
			return
		}
	}
	panic(fmt.Sprintf("cannot connect to localhost:%d", port))
}

func getBody(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	json, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(json)
}

func TestReadJsonError(t *testing.T) {
	assert.EqualError(t, readJsonError(422, []byte(`{"msg": "date is outside the allowed window"}`)),
		"date is outside the allowed window")
	assert.EqualError(t, readJsonError(401, nil), "unauthorized")
	assert.EqualError(t, readJsonError(500, []byte(`{"msg": ""}`)), "internal server error")
	assert.EqualError(t, readJsonError(502, []byte(`<html>bad gateway</html>`)), "bad gateway")
	assert.EqualError(t, readJsonError(599, []byte(`{}`)), "unexpected status 599")

	assert.Equal(t, "http://localhost/api/admin/sync", makeUrl("http://localhost/", "/api/admin/sync"))
}
