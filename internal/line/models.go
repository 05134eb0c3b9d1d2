package line

// --- Incoming webhook payload ---
// Reference: https://developers.line.biz/en/reference/messaging-api/#webhook-event-objects

type WebhookPayload struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type            string          `json:"type"`
	Mode            string          `json:"mode"`
	Timestamp       int64           `json:"timestamp"`
	WebhookEventID  string          `json:"webhookEventId"`
	DeliveryContext DeliveryContext `json:"deliveryContext"`
	ReplyToken      string          `json:"replyToken"`
	Source          Source          `json:"source"`
	Message         *Message        `json:"message,omitempty"`
}

type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

type Source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId,omitempty"`
	RoomID  string `json:"roomId,omitempty"`
}

type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// EventKind is the dispatch tag for an inbound event.
type EventKind int

const (
	KindOther EventKind = iota
	KindTextMessage
)

func (k EventKind) String() string {
	switch k {
	case KindTextMessage:
		return "text"
	default:
		return "other"
	}
}

func (e Event) Kind() EventKind {
	if e.Type == "message" && e.Message != nil && e.Message.Type == "text" {
		return KindTextMessage
	}
	return KindOther
}

// Text returns the message text, or "" for non-text events.
func (e Event) Text() string {
	if e.Kind() != KindTextMessage {
		return ""
	}
	return e.Message.Text
}

// --- Outgoing reply ---
// Reference: https://developers.line.biz/en/reference/messaging-api/#send-reply-message

type ReplyMessageRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []TextMessage `json:"messages"`
}

type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// errorResponse is the body LINE returns on 4xx/5xx.
type errorResponse struct {
	Message string `json:"message"`
}
