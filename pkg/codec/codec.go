// Package codec centralizes JSON encoding for VibeCraft on top of sonic,
// matching this codebase's existing pkg/utils/json convention. Every
// wire boundary (Bridge envelopes, MCP tool payloads, the MCP/catalog
// config files) marshals and unmarshals through here so the encoder
// stays swappable in one place.
package codec

import "github.com/bytedance/sonic"

var api = sonic.ConfigStd

func Marshal(v interface{}) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v interface{}) error {
	return api.Unmarshal(data, v)
}

func MarshalToString(v interface{}) (string, error) {
	return api.MarshalToString(v)
}
