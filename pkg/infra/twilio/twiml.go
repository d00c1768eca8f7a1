package twilio

import (
	"encoding/xml"
	"fmt"
)

// MessagingResponse builds the TwiML document Twilio expects as the
// webhook reply body.
type MessagingResponse struct {
	XMLName  xml.Name  `xml:"Response"`
	Messages []Message `xml:"Message"`
}

type Message struct {
	Bodies []string `xml:"Body"`
}

func NewMessagingResponse() *MessagingResponse {
	return &MessagingResponse{}
}

// Message appends one outbound message. Multiple bodies render as
// separate Body elements inside the same Message.
func (r *MessagingResponse) Message(bodies ...string) *MessagingResponse {
	r.Messages = append(r.Messages, Message{Bodies: bodies})
	return r
}

func (r *MessagingResponse) Render() (string, error) {
	payload, err := xml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to render TwiML: %w", err)
	}
	return xml.Header + string(payload), nil
}
