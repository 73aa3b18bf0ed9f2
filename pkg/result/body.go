package result

import "encoding/json"

// RawKey is the placeholder key used when a successful body is not JSON.
const RawKey = "raw"

// DecodeBody parses body as JSON. Bodies that do not parse, including empty
// ones, come back as {"raw": text}.
func DecodeBody(body []byte) any {
	v, _ := DecodeBodyErr(body)
	return v
}

// DecodeBodyErr is DecodeBody that also reports the parse error it swallowed.
func DecodeBodyErr(body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{RawKey: string(body)}, err
	}
	return v, nil
}

// Unwrap returns v["data"] when v is an object carrying a "data" key and v
// itself otherwise.
func Unwrap(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if inner, ok := obj["data"]; ok {
		return inner
	}
	return v
}
