package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"surveypulse/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubValidator struct{}

func (stubValidator) ValidateHostToken(token string) (*model.HostClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &model.HostClaims{HostID: "host_1"}, nil
}

type stubSurveys map[string]*model.Survey

func (s stubSurveys) GetByID(_ context.Context, id string) (*model.Survey, error) {
	return s[id], nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastReachesOnlySurveyDashboards(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Stop()

	a := NewConnection("s1", "h")
	b := NewConnection("s1", "h")
	other := NewConnection("s2", "h")
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)
	waitFor(t, func() bool { return hub.HasSubscribers("s1") && hub.HasSubscribers("s2") })

	hub.BroadcastToSurvey("s1", string(MsgAnalyticsUpdate), map[string]int{"total_responses": 3})

	for _, conn := range []*Connection{a, b} {
		select {
		case data := <-conn.Send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, MsgAnalyticsUpdate, msg.Type)
			assert.JSONEq(t, `{"total_responses":3}`, string(msg.Payload))
		case <-time.After(time.Second):
			t.Fatal("broadcast not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Stop()

	conn := NewConnection("s1", "h")
	hub.Register(conn)
	hub.Unregister(conn)

	_, ok := <-conn.Send
	assert.False(t, ok)
	waitFor(t, func() bool { return !hub.HasSubscribers("s1") })
}

func TestHub_StopIsIdempotentAndNonBlocking(t *testing.T) {
	hub := NewHub(nil)
	conn := NewConnection("s1", "h")
	hub.Register(conn)

	hub.Stop()
	hub.Stop()

	_, ok := <-conn.Send
	assert.False(t, ok, "stop closes open connections")

	// None of these may block once the hub is gone
	hub.BroadcastToSurvey("s1", "x", nil)
	hub.Unregister(conn)
	late := NewConnection("s1", "h")
	hub.Register(late)
	_, ok = <-late.Send
	assert.False(t, ok)
}

func TestHandler_DashboardWS(t *testing.T) {
	hub := NewHub(nil)
	surveys := stubSurveys{"s1": {ID: "s1", Title: "Coffee feedback"}}
	h := NewHandler(hub, stubValidator{}, surveys, nil)

	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/surveys/{surveyId}/dashboard", h.DashboardWS)
	srv := httptest.NewServer(r)
	defer srv.Close()
	defer hub.Stop()

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/surveys/"

	t.Run("rejects bad token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(base+"s1/dashboard?token=bad", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects unknown survey", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(base+"nope/dashboard?token=good", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("streams survey events", func(t *testing.T) {
		client, _, err := websocket.DefaultDialer.Dial(base+"s1/dashboard?token=good", nil)
		require.NoError(t, err)
		defer client.Close()

		var hello Message
		require.NoError(t, client.ReadJSON(&hello))
		assert.Equal(t, MsgConnected, hello.Type)

		waitFor(t, func() bool { return hub.HasSubscribers("s1") })
		hub.BroadcastToSurvey("s1", string(MsgResponseSubmitted), map[string]string{"response_id": "r1"})

		var msg Message
		require.NoError(t, client.ReadJSON(&msg))
		assert.Equal(t, MsgResponseSubmitted, msg.Type)
		assert.JSONEq(t, `{"response_id":"r1"}`, string(msg.Payload))

		client.Close()
		waitFor(t, func() bool { return !hub.HasSubscribers("s1") })
	})
}
