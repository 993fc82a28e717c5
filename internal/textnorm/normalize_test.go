package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"   ":                      "",
		"Afiliación":               "afiliacion",
		"  ¿Cómo   AFILIARSE?\t\n": "¿como afiliarse?",
		"INSCRIPCIÓN Ñandú":        "inscripcion nandu",
		"está cubierto":            "esta cubierto",
		"mi dni es 30.123.456":     "mi dni es 30.123.456",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Tengo un RECLAMO",
		"  autorización   previa ",
		"Ünïcödé spaces here",
		"İstanbul",
		"é decomposed",
		"한국어 텍스트",
		"😀 emoji  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
