package syncer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/agentstation/tripmap/pkg/errors"
)

// Encode serializes p as a sync token: standard base64 of its JSON.
func Encode(p *Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.WrapParse("json", "payload", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses a sync token. Surrounding whitespace is ignored, and
// unpadded or URL-safe base64 is accepted since tokens get mangled by chat
// apps and URL shorteners.
func Decode(token string) (*Payload, error) {
	token = strings.Join(strings.Fields(token), "")
	if token == "" {
		return nil, errors.NewParseError("base64", "token", "token is empty", nil)
	}

	data, err := decodeBase64(token)
	if err != nil {
		return nil, errors.NewParseError("base64", "token", "token is not valid base64", err)
	}
	return DecodeJSON(data)
}

// DecodeJSON parses a payload object. Anything but a JSON object is rejected.
func DecodeJSON(data []byte) (*Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, errors.NewParseError("json", "payload", "payload must be a JSON object", nil)
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.NewParseError("json", "payload", "payload does not match the expected shape", err)
	}
	return &p, nil
}

func decodeBase64(s string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
