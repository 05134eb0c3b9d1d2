package line

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Reply_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/bot/message/reply", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var req ReplyMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reply-token", req.ReplyToken)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "text", req.Messages[0].Type)
		assert.Equal(t, "สวัสดี", req.Messages[0].Text)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "access-token", time.Second)
	require.NoError(t, c.Reply(context.Background(), "reply-token", "สวัสดี"))
}

func TestClient_Reply_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid reply token"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "access-token", time.Second)
	err := c.Reply(context.Background(), "used-token", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Invalid reply token")
}

func TestClient_Reply_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "access-token", time.Second)
	err := c.Reply(context.Background(), "token", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestClient_Reply_EmptyToken(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "access-token", time.Second)
	assert.ErrorIs(t, c.Reply(context.Background(), "", "hi"), ErrEmptyReplyToken)
}

func TestClient_Reply_TruncatesLongText(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ReplyMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = req.Messages[0].Text
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "access-token", time.Second)
	require.NoError(t, c.Reply(context.Background(), "token", strings.Repeat("ก", MaxTextLength+10)))
	assert.Equal(t, MaxTextLength, utf8.RuneCountInString(got))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "กข", truncate("กขค", 2))
}
