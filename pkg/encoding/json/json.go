// Package json is the single JSON entry point for transports. Decoding goes
// through jsoniter; encoding prefers easyjson when a type has generated
// marshalers and falls back to jsoniter's std-compatible config.
package json

import (
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/mailru/easyjson"
)

var std = jsoniter.ConfigCompatibleWithStandardLibrary

var Marshal = func(v interface{}) ([]byte, error) {
	if em, ok := v.(easyjson.Marshaler); ok {
		return easyjson.Marshal(em)
	}
	return std.Marshal(v)
}

var MarshalIndent = std.MarshalIndent

var Unmarshal = jsoniter.ConfigFastest.Unmarshal

var NewEncoder = std.NewEncoder
var NewDecoder = jsoniter.ConfigFastest.NewDecoder

type RawMessage = stdjson.RawMessage
type Number = stdjson.Number
