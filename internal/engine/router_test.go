package engine

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/medic/supportbot/internal/faq"
	"github.com/medic/supportbot/internal/hours"
	"github.com/medic/supportbot/internal/intent"
)

func newTestRouter(t *testing.T) (*Router, *time.Location) {
	t.Helper()
	h, err := hours.New(9, 18, "America/Argentina/Buenos_Aires", []string{"2025-10-13"})
	if err != nil {
		t.Fatalf("hours: %v", err)
	}
	cfg := Config{
		Hours: h,
		Channels: map[intent.Intent]Channel{
			intent.Complaint:  {Phone: "+54 11 2031-8064", WhatsApp: "5491120318064"},
			intent.Commercial: {Phone: "+54 11 3636-3342", WhatsApp: "5491136363342"},
			intent.Emergency:  {Phone: "+54 11 7078-6200", WhatsApp: "5491170786200"},
		},
	}
	return NewRouter(cfg, intent.Default(), faq.Default()), h.Location
}

func TestRespondComplaintWithinHours(t *testing.T) {
	r, loc := newTestRouter(t)
	a := r.Respond("Tengo un reclamo", time.Date(2025, 10, 14, 10, 0, 0, 0, loc))
	if a.Intent != intent.Complaint {
		t.Fatalf("expected complaint, got %s", a.Intent)
	}
	h, ok := a.Handoff()
	if !ok {
		t.Fatalf("expected handoff outcome, got %#v", a.Outcome)
	}
	if h.Call != "+54 11 2031-8064" || h.WhatsApp != "" {
		t.Fatalf("unexpected handoff: %+v", h)
	}
	if h.TelURI() != "tel:+54112031-8064" {
		t.Fatalf("unexpected tel uri: %s", h.TelURI())
	}
	if !strings.Contains(a.Message, "¿Querés llamar ahora?") {
		t.Fatalf("unexpected message: %q", a.Message)
	}
}

func TestRespondComplaintOutsideHours(t *testing.T) {
	r, loc := newTestRouter(t)
	a := r.Respond("Tengo un reclamo", time.Date(2025, 10, 14, 20, 0, 0, 0, loc))
	h, ok := a.Handoff()
	if !ok || a.Intent != intent.Complaint {
		t.Fatalf("expected complaint handoff, got %+v", a)
	}
	if h.Call != "" {
		t.Fatalf("expected no call outside hours, got %q", h.Call)
	}
	want := "https://wa.me/5491120318064?text=Hola%2C%20quiero%20hacer%20un%20reclamo."
	if h.WhatsApp != want {
		t.Fatalf("unexpected whatsapp link: %s", h.WhatsApp)
	}
	if !strings.Contains(a.Message, "de 9:00 a 18:00 hs.") || !strings.Contains(a.Message, "WhatsApp") {
		t.Fatalf("unexpected message: %q", a.Message)
	}
}

func TestRespondCommercialOnHoliday(t *testing.T) {
	r, loc := newTestRouter(t)
	a := r.Respond("Consulta comercial", time.Date(2025, 10, 13, 11, 0, 0, 0, loc))
	h, ok := a.Handoff()
	if !ok || h.Call != "" || !strings.HasPrefix(h.WhatsApp, "https://wa.me/5491136363342?text=") {
		t.Fatalf("expected whatsapp handoff on holiday, got %+v", a)
	}
}

func TestRespondEmergencyIgnoresHours(t *testing.T) {
	r, loc := newTestRouter(t)
	a := r.Respond("necesito una ambulancia", time.Date(2025, 10, 13, 3, 0, 0, 0, loc))
	h, ok := a.Handoff()
	if !ok || a.Intent != intent.Emergency || h.Call != "+54 11 7078-6200" {
		t.Fatalf("expected emergency call, got %+v", a)
	}
}

func TestRespondSelfServiceRequiresLookup(t *testing.T) {
	r, loc := newTestRouter(t)
	now := time.Date(2025, 10, 14, 10, 0, 0, 0, loc)
	for in, want := range map[string]intent.Intent{
		"mi plan":       intent.MyPlan,
		"mi estado":     intent.MyStatus,
		"mi credencial": intent.MyCard,
	} {
		a := r.Respond(in, now)
		f, ok := a.LookupFeature()
		if !ok || f != want || a.Intent != want {
			t.Fatalf("%q: expected lookup for %s, got %+v", in, want, a)
		}
	}
}

func TestRespondFAQTakesPriorityOverUnknown(t *testing.T) {
	r, loc := newTestRouter(t)
	a := r.Respond("dónde veo los prestadores de mi zona", time.Date(2025, 10, 14, 10, 0, 0, 0, loc))
	if a.Intent != intent.FAQ {
		t.Fatalf("expected faq, got %s", a.Intent)
	}
	if _, ok := a.Outcome.(Informational); !ok {
		t.Fatalf("expected informational outcome")
	}
	if !strings.Contains(a.Message, "Prestadores / Cartilla") {
		t.Fatalf("unexpected answer: %q", a.Message)
	}
}

func TestRespondCoverage(t *testing.T) {
	r, loc := newTestRouter(t)
	now := time.Date(2025, 10, 14, 10, 0, 0, 0, loc)

	// the knowledge base answers this one, tagged with the coverage intent
	a := r.Respond("cobertura", now)
	if a.Intent != intent.Coverage || !strings.Contains(a.Message, "Cobertura / beneficios") {
		t.Fatalf("expected coverage faq answer, got %+v", a)
	}

	// nothing in the knowledge base clears the floor: fixed guidance
	a = r.Respond("qué cubre", now)
	if a.Intent != intent.Coverage || !strings.Contains(a.Message, "Decime qué práctica necesitás") {
		t.Fatalf("expected coverage guidance, got %+v", a)
	}
	if _, ok := a.LookupFeature(); ok {
		t.Fatalf("coverage must not request a lookup")
	}
}

func TestRespondFallback(t *testing.T) {
	r, loc := newTestRouter(t)
	a := r.Respond("hola como estas", time.Date(2025, 10, 14, 10, 0, 0, 0, loc))
	if a.Intent != intent.Unknown || a.Message != msgFallback {
		t.Fatalf("expected fallback, got %+v", a)
	}
}

func TestRespondDeterministic(t *testing.T) {
	r, loc := newTestRouter(t)
	now := time.Date(2025, 10, 14, 10, 0, 0, 0, loc)
	first := r.Respond("no me carga la credencial", now)
	for i := 0; i < 10; i++ {
		if got := r.Respond("no me carga la credencial", now); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestActionJSON(t *testing.T) {
	b, err := json.Marshal(Action{Message: "x", Intent: intent.MyPlan, Outcome: LookupRequired{Feature: intent.MyPlan}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	meta := out["meta"].(map[string]any)
	if meta["requires_external_lookup"] != true || meta["feature"] != "my_plan" || meta["kind"] != "lookup_required" {
		t.Fatalf("unexpected meta: %v", meta)
	}
	if _, ok := out["call"]; ok {
		t.Fatalf("call must be omitted: %s", b)
	}
}
