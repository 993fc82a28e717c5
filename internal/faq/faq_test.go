package faq

import "testing"

func TestAnswerMatchesEntries(t *testing.T) {
	kb := Default()
	cases := map[string]string{
		"¿Cómo afiliarse a nuestro plan?": "afiliar",
		"credencial":                      "credencial",
		"dónde están los prestadores":     "prestadores",
		"pago":                            "formas_pago",
		"autorización":                    "beneficios",
		"necesito un reintegro":           "reintegros",
	}
	for in, wantID := range cases {
		e, _, ok := kb.Match(in)
		if !ok {
			t.Fatalf("expected a match for %q", in)
		}
		if e.ID != wantID {
			t.Fatalf("%q matched %s, want %s", in, e.ID, wantID)
		}
	}
}

func TestAnswerBelowFloor(t *testing.T) {
	kb := Default()
	for _, in := range []string{"plan", "hola", "", "tengo un error"} {
		if a, ok := kb.Answer(in); ok {
			t.Fatalf("expected no answer for %q, got %q", in, a)
		}
	}
}

func TestAnswerReturnsBody(t *testing.T) {
	kb := Default()
	a, ok := kb.Answer("credencial")
	if !ok || a != DefaultCatalog[2].Answer {
		t.Fatalf("unexpected answer: %q", a)
	}
}

func TestEntriesIsACopy(t *testing.T) {
	kb := Default()
	entries := kb.Entries()
	entries[0].ID = "mutated"
	if kb.Entries()[0].ID != "afiliar" {
		t.Fatalf("catalog mutated through Entries")
	}
}
