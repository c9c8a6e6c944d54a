package feed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Strategy names scope cursors: a cursor minted by one strategy is not valid
// for another.
const (
	StrategyBlend    = "all"
	StrategyCategory = "cat"
)

// Cursor is the decoded form of the opaque continuation token: a small JSON
// envelope, base64-encoded, safe to round-trip through a client with no
// server-side session state.
type Cursor struct {
	Strategy string `json:"t"`
	Offset   int    `json:"i"`
	Continue string `json:"c,omitempty"`
	Seed     int64  `json:"s,omitempty"`
}

func (c Cursor) Encode() string {
	payload, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return c.Strategy + ":" + base64.RawURLEncoding.EncodeToString(payload)
}

// DecodeCursor parses a token minted for the given strategy. Tokens from
// other strategies, or garbage, fail to decode.
func DecodeCursor(raw, strategy string) (*Cursor, error) {
	prefix := strategy + ":"
	if !strings.HasPrefix(raw, prefix) {
		return nil, fmt.Errorf("cursor is not valid for strategy %q", strategy)
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(raw, prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor: %w", err)
	}

	var cursor Cursor
	if err := json.Unmarshal(payload, &cursor); err != nil {
		return nil, fmt.Errorf("failed to parse cursor: %w", err)
	}
	if cursor.Strategy != strategy {
		return nil, fmt.Errorf("cursor strategy mismatch: got %q, want %q", cursor.Strategy, strategy)
	}
	return &cursor, nil
}
