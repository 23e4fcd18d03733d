package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/ludus/internal/config"
	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScript(t *testing.T) {
	c := config.Default()
	c.Script = []config.ScriptEntry{
		{Name: "count", Args: map[string]any{"value": 10, "steps": 2, "interval": "200ms"}},
		{Name: "log", Args: map[string]any{"message": "done"}},
		{Name: "wait", Args: map[string]any{"duration": "300ms"}},
	}

	var tracker tui.Tracker
	a, err := newApp(c, logging.NewNop(), nil, tracker.Hooks())
	require.NoError(t, err)
	defer a.close()

	res, err := runScript(t.Context(), a, c.Script, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Executed)
	assert.NoError(t, res.Err())
	assert.Equal(t, 12, a.demo.Count())

	stats := tracker.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, []string{"count", "log", "wait"}, []string{stats[0].Command, stats[1].Command, stats[2].Command})
}

func TestRunScript_UnknownCommand(t *testing.T) {
	a, err := newApp(config.Default(), logging.NewNop(), nil)
	require.NoError(t, err)
	defer a.close()

	_, err = runScript(t.Context(), a, []config.ScriptEntry{{Name: "jump"}}, time.Millisecond)
	assert.ErrorContains(t, err, "jump")
}

func TestRunScript_EmptyScript(t *testing.T) {
	a, err := newApp(config.Default(), logging.NewNop(), nil)
	require.NoError(t, err)
	defer a.close()

	res, err := runScript(t.Context(), a, nil, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Executed)
}

func TestApp_Handler(t *testing.T) {
	a, err := newApp(config.Default(), logging.NewNop(), nil)
	require.NoError(t, err)
	defer a.close()
	require.NoError(t, a.demo.Start())
	a.host.Step(time.Millisecond)

	srv := httptest.NewServer(a.handler())
	defer srv.Close()

	for _, path := range []string{"/health", "/state", "/graph", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
	assert.Equal(t, "MenuState", a.board.Status().State)
	assert.Contains(t, a.board.Diagram(), "[*] --> MenuState")
}

func TestCurrentIsClaimedOnce(t *testing.T) {
	a, err := newApp(config.Default(), logging.NewNop(), nil)
	require.NoError(t, err)
	defer a.close()

	require.NoError(t, current.Claim(a))
	defer current.Clear()
	assert.Error(t, current.Claim(a))
}
