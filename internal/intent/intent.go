// Package intent classifies an utterance into one of a closed set of
// top-level support intents.
package intent

import (
	"fmt"

	"github.com/medic/supportbot/internal/scoring"
)

type Intent string

const (
	Emergency  Intent = "emergency"
	Complaint  Intent = "complaint"
	Commercial Intent = "commercial"
	FAQ        Intent = "faq"
	MyPlan     Intent = "my_plan"
	MyStatus   Intent = "my_status"
	MyCard     Intent = "my_card"
	Coverage   Intent = "coverage"
	Unknown    Intent = "unknown"
)

// SelfService reports whether answering i requires the member's national ID.
func (i Intent) SelfService() bool {
	return i == MyPlan || i == MyStatus || i == MyCard
}

func (i Intent) Valid() bool {
	switch i {
	case Emergency, Complaint, Commercial, FAQ, MyPlan, MyStatus, MyCard, Coverage, Unknown:
		return true
	}
	return false
}

// Intents are coarser than FAQ topics, so exact and long hits weigh more and
// the floor is higher. Long keywords have 8+ runes.
var Weights = scoring.Weights{
	Exact:          10,
	LongSubstring:  6,
	ShortSubstring: 3,
	LongKeywordLen: 8,
	Floor:          6,
}

// Order is the evaluation order; on equal scores the earlier intent wins.
var Order = []Intent{Emergency, Complaint, Commercial, MyPlan, MyStatus, MyCard, Coverage, FAQ}

// Dictionary maps each classifiable intent to its trigger keywords.
var Dictionary = map[Intent][]string{
	Emergency: {"ambulancia", "emergencia", "urgencia", "despacho", "una ambulancia"},
	Complaint: {
		"reclamo", "reclamos", "reclamar", "queja", "quejas", "una queja",
		"un reclamo", "hacer un reclamo", "tengo un reclamo", "quiero reclamar",
	},
	Commercial: {
		"comercial", "consulta comercial", "afiliar", "afiliarse", "afiliación", "quiero afiliarme",
		"plan", "venta", "ventas", "cotizar", "inscripción", "inscribirme",
	},
	MyPlan:   {"mi plan", "plan actual", "qué plan tengo", "cuál es mi plan"},
	MyStatus: {"mi estado", "estado de cuenta", "vigencia", "mi cobertura", "estoy al día", "adeudo", "deuda"},
	MyCard:   {"mi credencial", "credencial digital", "mostrar credencial", "mi carnet"},
	Coverage: {
		"cobertura", "qué cubre", "cubre", "está cubierto", "autorización", "autorizaciones",
		"beneficios", "copago", "coseguro",
	},
	FAQ: {
		"horario", "prestadores", "farmacias", "farmacia", "credencial", "cartilla", "qr",
		"carnet", "cómo afiliarse", "turnos", "turno", "reintegro",
	},
}

// Classifier is read-only after construction and safe for concurrent use.
type Classifier struct {
	order      []Intent
	candidates []scoring.Candidate
}

// NewClassifier builds a classifier over dict evaluated in order. It panics
// on an intent outside the closed set, like regexp.MustCompile.
func NewClassifier(order []Intent, dict map[Intent][]string) *Classifier {
	c := &Classifier{order: order}
	for _, in := range order {
		if !in.Valid() || in == Unknown {
			panic(fmt.Sprintf("intent: cannot classify into %q", in))
		}
		c.candidates = append(c.candidates, scoring.Candidate{Keywords: dict[in]})
	}
	return c
}

func Default() *Classifier {
	return NewClassifier(Order, Dictionary)
}

// Classify returns the best intent, or Unknown when nothing reaches the floor.
func (c *Classifier) Classify(utterance string) Intent {
	in, _ := c.ClassifyWithScore(utterance)
	return in
}

func (c *Classifier) ClassifyWithScore(utterance string) (Intent, int) {
	idx, sc := scoring.Best(utterance, c.candidates, Weights)
	if idx < 0 {
		return Unknown, sc
	}
	return c.order[idx], sc
}
