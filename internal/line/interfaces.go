package line

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/replier_mock.go -package=mock

// Replier answers one inbound event through the LINE reply API.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}
