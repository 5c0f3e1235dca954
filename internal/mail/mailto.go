package mail

import (
	"context"
	"net/url"
	"strings"
)

// MailtoName is the configuration name of MailtoHandler.
const MailtoName = "mailto"

// MailtoHandler hands the message back to the client as a mailto: link
// (RFC 6068), leaving the choice of mail app and recipient to the user.
type MailtoHandler struct{}

// NewMailtoHandler creates a MailtoHandler.
func NewMailtoHandler() *MailtoHandler {
	return &MailtoHandler{}
}

func (h *MailtoHandler) Name() string {
	return MailtoName
}

func (h *MailtoHandler) Send(ctx context.Context, msg Message) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Receipt{Handler: MailtoName, URI: MailtoURI(msg)}, nil
}

// MailtoURI builds the mailto: link for msg.
func MailtoURI(msg Message) string {
	var b strings.Builder
	b.WriteString("mailto:")

	for i, to := range msg.To {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strings.ReplaceAll(escape(to), "%40", "@"))
	}

	var params []string
	if msg.Subject != "" {
		params = append(params, "subject="+escape(msg.Subject))
	}
	if msg.Body != "" {
		params = append(params, "body="+escape(strings.ReplaceAll(msg.Body, "\n", "\r\n")))
	}
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}

	return b.String()
}

// escape percent-encodes s for a mailto: URI. Spaces become %20, not '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
