package line

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "channel-secret"

const textEventBody = `{
  "destination": "Uxxxxxxxx",
  "events": [
    {
      "type": "message",
      "mode": "active",
      "timestamp": 1700000000000,
      "webhookEventId": "01HEVENT1",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "reply-1",
      "source": {"type": "user", "userId": "U1"},
      "message": {"id": "m1", "type": "text", "text": "1 large egg"}
    },
    {
      "type": "message",
      "webhookEventId": "01HEVENT2",
      "replyToken": "reply-2",
      "source": {"type": "user", "userId": "U1"},
      "message": {"id": "m2", "type": "sticker"}
    }
  ]
}`

type recorder struct {
	events []Event
}

func (r *recorder) handle(_ context.Context, ev Event) {
	r.events = append(r.events, ev)
}

func newCallbackRequest(body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	return req
}

func TestHandleCallback_ValidSignature(t *testing.T) {
	rec := &recorder{}
	v := NewVerifier(testSecret)
	h := NewWebhookHandler(v, rec.handle)

	w := httptest.NewRecorder()
	h.HandleCallback(w, newCallbackRequest(textEventBody, v.Sign([]byte(textEventBody))))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	require.Len(t, rec.events, 2)
	assert.Equal(t, KindTextMessage, rec.events[0].Kind())
	assert.Equal(t, "reply-1", rec.events[0].ReplyToken)
	assert.Equal(t, "1 large egg", rec.events[0].Text())
	assert.Equal(t, "01HEVENT1", rec.events[0].WebhookEventID)
	assert.Equal(t, "U1", rec.events[0].Source.UserID)
	assert.Equal(t, KindOther, rec.events[1].Kind())
	assert.Empty(t, rec.events[1].Text())
}

func TestHandleCallback_InvalidSignature(t *testing.T) {
	rec := &recorder{}
	h := NewWebhookHandler(NewVerifier(testSecret), rec.handle)

	w := httptest.NewRecorder()
	h.HandleCallback(w, newCallbackRequest(textEventBody, NewVerifier("wrong").Sign([]byte(textEventBody))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, rec.events)
}

func TestHandleCallback_MissingSignature(t *testing.T) {
	rec := &recorder{}
	h := NewWebhookHandler(NewVerifier(testSecret), rec.handle)

	w := httptest.NewRecorder()
	h.HandleCallback(w, newCallbackRequest(textEventBody, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, rec.events)
}

func TestHandleCallback_InvalidSignatureOnMalformedBody(t *testing.T) {
	rec := &recorder{}
	h := NewWebhookHandler(NewVerifier(testSecret), rec.handle)

	w := httptest.NewRecorder()
	h.HandleCallback(w, newCallbackRequest("{not json", "bogus"))

	// signature is checked before the payload is looked at
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCallback_MalformedPayload(t *testing.T) {
	rec := &recorder{}
	v := NewVerifier(testSecret)
	h := NewWebhookHandler(v, rec.handle)

	body := "{not json"
	w := httptest.NewRecorder()
	h.HandleCallback(w, newCallbackRequest(body, v.Sign([]byte(body))))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, rec.events)
}

func TestHandleCallback_EmptyEvents(t *testing.T) {
	rec := &recorder{}
	v := NewVerifier(testSecret)
	h := NewWebhookHandler(v, rec.handle)

	body := `{"destination":"U0","events":[]}`
	w := httptest.NewRecorder()
	h.HandleCallback(w, newCallbackRequest(body, v.Sign([]byte(body))))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, rec.events)
}

func TestHandleCallback_BodyTooLarge(t *testing.T) {
	rec := &recorder{}
	v := NewVerifier(testSecret)
	h := NewWebhookHandler(v, rec.handle)

	body := strings.Repeat("a", maxBodyBytes+1)
	w := httptest.NewRecorder()
	h.HandleCallback(w, newCallbackRequest(body, v.Sign([]byte(body))))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, rec.events)
}

func TestEventKind(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want EventKind
	}{
		{"text message", Event{Type: "message", Message: &Message{Type: "text", Text: "rice"}}, KindTextMessage},
		{"image message", Event{Type: "message", Message: &Message{Type: "image"}}, KindOther},
		{"message without body", Event{Type: "message"}, KindOther},
		{"follow", Event{Type: "follow"}, KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ev.Kind())
		})
	}

	assert.Equal(t, "text", KindTextMessage.String())
	assert.Equal(t, "other", KindOther.String())
}
