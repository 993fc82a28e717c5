// Package engine routes one user utterance to a single Action.
package engine

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/medic/supportbot/internal/faq"
	"github.com/medic/supportbot/internal/hours"
	"github.com/medic/supportbot/internal/intent"
)

const (
	msgOutsideHours   = "Nuestro horario de atención administrativa es de %d:00 a %d:00 hs."
	msgToWhatsApp     = "Te derivamos a WhatsApp para que dejes tu consulta y sea respondida en el próximo horario hábil."
	msgCallNow        = "📞 %s\n¿Querés llamar ahora?"
	msgEmergency      = "El servicio de despacho de emergencias se encuentra disponible las 24 hs."
	msgCoverageNotice = "La cobertura exacta puede variar según el plan y la práctica. Algunas requieren autorización previa."
	msgCoverageHowTo  = "Decime qué práctica necesitás (ej: resonancia, laboratorio, odontología) y te explico cómo gestionarlo."
	msgFallback       = `No llegué a entender. Probá con: "ambulancia", "reclamos", "comercial", "mi plan", "mi estado" o "mi credencial".`
)

var lookupMessages = map[intent.Intent]string{
	intent.MyPlan:   "Consulto tu plan…",
	intent.MyStatus: "Verifico tu estado y vigencia…",
	intent.MyCard:   "Busco tu credencial digital…",
}

var cannedWhatsApp = map[intent.Intent]string{
	intent.Complaint:  "Hola, quiero hacer un reclamo.",
	intent.Commercial: "Hola, quiero hacer una consulta comercial.",
}

// Channel is a contact point for intents handed off to a human.
type Channel struct {
	Phone    string
	WhatsApp string // wa.me id, digits only
}

type Config struct {
	Hours    hours.Config
	Channels map[intent.Intent]Channel
}

// Router holds only read-only collaborators; Respond is safe for concurrent use
// and performs no I/O.
type Router struct {
	cfg        Config
	classifier *intent.Classifier
	kb         *faq.KnowledgeBase
}

func NewRouter(cfg Config, classifier *intent.Classifier, kb *faq.KnowledgeBase) *Router {
	return &Router{cfg: cfg, classifier: classifier, kb: kb}
}

// Respond never fails: every branch ends in a well-formed Action.
func (r *Router) Respond(utterance string, now time.Time) Action {
	in := r.classifier.Classify(utterance)

	if in == intent.FAQ || in == intent.Unknown || in == intent.Coverage {
		if answer, ok := r.kb.Answer(utterance); ok {
			tag := in
			if tag == intent.Unknown {
				tag = intent.FAQ
			}
			return Action{Message: answer, Intent: tag, Outcome: Informational{}}
		}
	}

	if in.SelfService() {
		return lookup(in, lookupMessages[in])
	}

	switch in {
	case intent.Emergency:
		if ch, ok := r.cfg.Channels[in]; ok && ch.Phone != "" {
			return Action{Message: msgEmergency, Intent: in, Outcome: Handoff{Call: ch.Phone}}
		}
	case intent.Complaint, intent.Commercial:
		if a, ok := r.handoff(in, now); ok {
			return a
		}
	case intent.Coverage:
		return Action{
			Message: msgCoverageNotice + "\n" + msgCoverageHowTo,
			Intent:  in,
			Outcome: Informational{},
		}
	}

	return Action{Message: msgFallback, Intent: intent.Unknown, Outcome: Informational{}}
}

func (r *Router) handoff(in intent.Intent, now time.Time) (Action, bool) {
	ch, ok := r.cfg.Channels[in]
	if !ok {
		return Action{}, false
	}
	if r.cfg.Hours.IsOpen(now) && ch.Phone != "" {
		return Action{
			Message: fmt.Sprintf(msgCallNow, ch.Phone),
			Intent:  in,
			Outcome: Handoff{Call: ch.Phone},
		}, true
	}
	if ch.WhatsApp == "" {
		return Action{}, false
	}
	notice := fmt.Sprintf(msgOutsideHours, r.cfg.Hours.StartHour, r.cfg.Hours.EndHour)
	return Action{
		Message: notice + "\n" + msgToWhatsApp,
		Intent:  in,
		Outcome: Handoff{WhatsApp: WhatsAppLink(ch.WhatsApp, cannedWhatsApp[in])},
	}, true
}

func lookup(feature intent.Intent, msg string) Action {
	return Action{Message: msg, Intent: feature, Outcome: LookupRequired{Feature: feature}}
}

// WhatsAppLink builds a wa.me deep link with text pre-filled.
func WhatsAppLink(id, text string) string {
	link := "https://wa.me/" + id
	if text == "" {
		return link
	}
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
