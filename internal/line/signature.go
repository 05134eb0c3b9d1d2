package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader carries base64(HMAC-SHA256(channel secret, raw body)).
// Reference: https://developers.line.biz/en/reference/messaging-api/#signature-validation
const SignatureHeader = "X-Line-Signature"

type Verifier struct {
	secret []byte
}

func NewVerifier(channelSecret string) *Verifier {
	return &Verifier{secret: []byte(channelSecret)}
}

// Sign returns the signature LINE would send for body.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches body. The comparison is constant time.
func (v *Verifier) Verify(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(v.Sign(body)), []byte(signature))
}
