package auth

// TokenFields lists, in priority order, the response fields that may carry
// a bearer token.
var TokenFields = []string{
	"accessToken",
	"token",
	"access_token",
	"jwt",
	"idToken",
	"id_token",
}

// DetectToken finds a bearer token in a decoded login response. The top
// level object is checked first, then the object nested under "data". Only
// non-empty strings count.
func DetectToken(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	if tok, ok := firstToken(obj); ok {
		return tok, true
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		return firstToken(inner)
	}
	return "", false
}

func firstToken(obj map[string]any) (string, bool) {
	for _, key := range TokenFields {
		if s, ok := obj[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
