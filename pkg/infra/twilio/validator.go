package twilio

import (
	"crypto/hmac"
	"crypto/sha1" // #nosec G505 -- Twilio's signature scheme is HMAC-SHA1
	"encoding/base64"
	"net/url"
	"sort"
)

// ComputeSignature implements Twilio's request signing: the full request
// URL concatenated with every POST parameter, sorted by name, each as
// name immediately followed by value, HMAC-SHA1 over the result,
// base64-encoded.
func ComputeSignature(authToken, requestURL string, params url.Values) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	payload := requestURL
	for _, name := range names {
		for _, value := range params[name] {
			payload += name + value
		}
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// ValidateSignature checks the X-Twilio-Signature header value against
// the expected signature for this request.
func ValidateSignature(authToken, requestURL string, params url.Values, signature string) bool {
	expected := ComputeSignature(authToken, requestURL, params)
	return hmac.Equal([]byte(expected), []byte(signature))
}
