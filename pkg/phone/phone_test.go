package phone

import "testing"

func TestNormalize_CanonicalForms(t *testing.T) {
	// every supported input shape must collapse to the same MSISDN
	cases := []struct {
		name string
		raw  string
	}{
		{"trunk prefixed", "0708374149"},
		{"international", "254708374149"},
		{"plus prefixed", "+254708374149"},
		{"bare local digits", "708374149"},
		{"spaced", "0708 374 149"},
		{"dashed", "0708-374-149"},
		{"parenthesized", "(0708) 374149"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize("KE", tc.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tc.raw, err)
			}
			if got != "254708374149" {
				t.Errorf("Normalize(%q) = %q, want 254708374149", tc.raw, got)
			}
		})
	}
}

func TestNormalize_OtherCountries(t *testing.T) {
	cases := []struct {
		country string
		raw     string
		want    string
	}{
		{"TZ", "0754123456", "255754123456"},
		{"UG", "0772123456", "256772123456"},
		{"GH", "0244123456", "233244123456"},
		{"NG", "08031234567", "2348031234567"},
		{"ke", "0110123456", "254110123456"}, // lower case country, 1xx series
	}

	for _, tc := range cases {
		got, err := Normalize(tc.country, tc.raw)
		if err != nil {
			t.Fatalf("Normalize(%s, %q) returned error: %v", tc.country, tc.raw, err)
		}
		if got != tc.want {
			t.Errorf("Normalize(%s, %q) = %q, want %q", tc.country, tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"letters", "07o8374149"},
		{"too short", "070837414"},
		{"too long", "07083741491"},
		{"wrong series", "0908374149"}, // KE has no 9xx mobile series
		{"foreign dial code", "447911123456"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Normalize("KE", tc.raw); err == nil {
				t.Errorf("Normalize(%q) accepted a malformed number", tc.raw)
			}
		})
	}
}

func TestNormalize_UnsupportedCountry(t *testing.T) {
	if _, err := Normalize("FR", "0612345678"); err != ErrUnsupportedCountry {
		t.Errorf("expected ErrUnsupportedCountry, got %v", err)
	}
}
