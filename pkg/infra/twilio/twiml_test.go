package twilio_test

import (
	"net/url"
	"testing"

	"github.com/askit4care/careline/pkg/infra/twilio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagingResponse_SingleBody(t *testing.T) {
	out, err := twilio.NewMessagingResponse().
		Message("¡Hola! ¿En qué puedo ayudarte?").
		Render()
	require.NoError(t, err)

	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, "<Response><Message><Body>¡Hola! ¿En qué puedo ayudarte?</Body></Message></Response>")
}

func TestMessagingResponse_TwoBodies(t *testing.T) {
	out, err := twilio.NewMessagingResponse().
		Message("primera parte", "segunda parte").
		Render()
	require.NoError(t, err)

	assert.Contains(t, out, "<Body>primera parte</Body><Body>segunda parte</Body>")
}

func TestMessagingResponse_EscapesMarkup(t *testing.T) {
	out, err := twilio.NewMessagingResponse().
		Message("a < b & c").
		Render()
	require.NoError(t, err)

	assert.Contains(t, out, "a &lt; b &amp; c")
}

func TestValidateSignature(t *testing.T) {
	// Worked example from Twilio's security documentation.
	params := url.Values{}
	params.Set("CallSid", "CA1234567890ABCDE")
	params.Set("Caller", "+14158675310")
	params.Set("Digits", "1234")
	params.Set("From", "+14158675310")
	params.Set("To", "+18005551212")

	requestURL := "https://mycompany.com/myapp.php?foo=1&bar=2"
	signature := twilio.ComputeSignature("12345", requestURL, params)

	assert.Equal(t, "GvWf1cFY/Q7PnoempGyD5oXAezc=", signature)
	assert.True(t, twilio.ValidateSignature("12345", requestURL, params, signature))
	assert.False(t, twilio.ValidateSignature("12345", requestURL, params, "bogus"))
	assert.False(t, twilio.ValidateSignature("wrong-token", requestURL, params, signature))
}
