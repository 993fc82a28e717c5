package engine

import (
	"encoding/json"
	"strings"

	"github.com/medic/supportbot/internal/intent"
)

// Outcome is the closed set of things an Action asks its caller to do.
// It is one of LookupRequired, Handoff or Informational.
type Outcome interface {
	kind() string
}

// LookupRequired asks the caller to run profile enrichment for Feature and
// append its reply after the Action's provisional message.
type LookupRequired struct {
	Feature intent.Intent
}

// Handoff offers a live channel. Call is set when phone routing is available,
// WhatsApp otherwise. Side effects run only on explicit user confirmation.
type Handoff struct {
	Call     string
	WhatsApp string
}

// Informational needs nothing beyond showing the message.
type Informational struct{}

func (LookupRequired) kind() string { return "lookup_required" }
func (Handoff) kind() string        { return "handoff" }
func (Informational) kind() string  { return "informational" }

// TelURI is the dialable form of Call, blanks removed.
func (h Handoff) TelURI() string {
	if h.Call == "" {
		return ""
	}
	return "tel:" + strings.Join(strings.Fields(h.Call), "")
}

// Action is the engine's only output. It is created per turn and never mutated.
type Action struct {
	Message string
	Intent  intent.Intent
	Outcome Outcome
}

func (a Action) Handoff() (Handoff, bool) {
	h, ok := a.Outcome.(Handoff)
	return h, ok
}

func (a Action) LookupFeature() (intent.Intent, bool) {
	l, ok := a.Outcome.(LookupRequired)
	return l.Feature, ok
}

type actionMeta struct {
	Kind                   string `json:"kind"`
	RequiresExternalLookup bool   `json:"requires_external_lookup"`
	Feature                string `json:"feature,omitempty"`
}

type actionJSON struct {
	Message  string     `json:"message"`
	Intent   string     `json:"intent,omitempty"`
	Call     string     `json:"call,omitempty"`
	CallURI  string     `json:"call_uri,omitempty"`
	WhatsApp string     `json:"whatsapp,omitempty"`
	Meta     actionMeta `json:"meta"`
}

func (a Action) MarshalJSON() ([]byte, error) {
	out := actionJSON{Message: a.Message, Intent: string(a.Intent)}
	switch o := a.Outcome.(type) {
	case LookupRequired:
		out.Meta = actionMeta{Kind: o.kind(), RequiresExternalLookup: true, Feature: string(o.Feature)}
	case Handoff:
		out.Call = o.Call
		out.CallURI = o.TelURI()
		out.WhatsApp = o.WhatsApp
		out.Meta = actionMeta{Kind: o.kind()}
	default:
		out.Meta = actionMeta{Kind: Informational{}.kind()}
	}
	return json.Marshal(out)
}
