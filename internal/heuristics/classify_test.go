package heuristics

import "testing"

func TestClassifyType(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"ISCC EU Certificate of Sustainability", "ISCC"},
		{"certified under iscc plus", "ISCC"},
		{"RSB Global fuel certification", "RSB"},
		{"CORSIA eligible fuel statement", "CORSIA"},
		{"generic sustainability statement", "other"},
		// Ordered table: ISCC wins over a later RSB mention.
		{"ISCC and RSB joint audit", "ISCC"},
	}
	for _, tc := range cases {
		if got := ClassifyType(tc.text, "other"); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.text, tc.want, got)
		}
	}
}

func TestDetectIssuingBodyVerbatim(t *testing.T) {
	body, ok := DetectIssuingBody("Issued by the Roundtable on Sustainable Biomaterials in 2024")
	if !ok {
		t.Fatal("expected a match")
	}
	if body != "Roundtable on Sustainable Biomaterials" {
		t.Fatalf("expected verbatim scheme name, got %q", body)
	}

	body, ok = DetectIssuingBody("scheme: iscc")
	if !ok {
		t.Fatal("expected acronym match")
	}
	// Verbatim: the lowercase source casing is preserved.
	if body != "iscc" {
		t.Fatalf("expected verbatim acronym, got %q", body)
	}
}

func TestDetectIssuingBodyNoMatch(t *testing.T) {
	if _, ok := DetectIssuingBody("unaffiliated document"); ok {
		t.Fatal("expected no match")
	}
}
