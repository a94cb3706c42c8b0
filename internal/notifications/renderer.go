package notifications

import (
	"fmt"
	"strings"
)

// Renderer builds channel-specific message text from an assignment payload.
type Renderer struct {
	baseURL string
}

// NewRenderer creates a renderer. baseURL is used to build incident links and
// may be empty.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{baseURL: strings.TrimRight(baseURL, "/")}
}

// Render returns subject and body for the given channel.
func (r *Renderer) Render(channel Channel, payload AssignmentPayload) (string, string, error) {
	switch channel {
	case ChannelEmail:
		return r.renderEmail(payload), r.renderBody(payload), nil
	case ChannelTelegram:
		// telegram has no subject; everything goes into the body
		return "", r.renderEmail(payload) + "\n\n" + r.renderBody(payload), nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
}

func (r *Renderer) renderEmail(payload AssignmentPayload) string {
	return fmt.Sprintf("[%s] Incident assigned: %s",
		strings.ToUpper(payload.Severity), payload.IncidentTitle)
}

func (r *Renderer) renderBody(payload AssignmentPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Incident %q has been assigned to %s.\n\n", payload.IncidentTitle, payload.AssigneeName)
	fmt.Fprintf(&b, "Severity: %s\n", payload.Severity)
	fmt.Fprintf(&b, "Status: %s\n", payload.Status)
	if r.baseURL != "" {
		fmt.Fprintf(&b, "\n%s/incidents/%s\n", r.baseURL, payload.IncidentID)
	}
	return b.String()
}
