package localizer

import (
	"reflect"
	"testing"
)

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"fr", "fr", false},
		{"pt-BR", "pt", false},
		{"zh_CN", "zh", false},
		{" de ", "de", false},
		{"EN-GB", "en", false},
		{"not a locale", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeLocale(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeLocale(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeLocale(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBaseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fr", "fr"},
		{"pt-BR", "pt"},
		{"zh_CN", "zh"},
		{"XX-unparseable-tag-999", "xx"},
	}

	for _, tt := range tests {
		if got := BaseLocale(tt.in); got != tt.want {
			t.Errorf("BaseLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameLocale(t *testing.T) {
	if !SameLocale("en", "EN-GB") {
		t.Error("en and EN-GB should match")
	}
	if !SameLocale("pt", "pt-BR") {
		t.Error("pt and pt-BR should match")
	}
	if SameLocale("pt", "es") {
		t.Error("pt and es should not match")
	}
}

func TestGetLanguageName(t *testing.T) {
	if got := GetLanguageName("fr"); got != "French" {
		t.Errorf("GetLanguageName(fr) = %q", got)
	}
	if got := GetLanguageName("pt-BR"); got != "Portuguese" {
		t.Errorf("GetLanguageName(pt-BR) = %q", got)
	}
	if got := GetLanguageName("xx"); got != "xx" {
		t.Errorf("GetLanguageName(xx) = %q, want code fallback", got)
	}
}

func TestDirection(t *testing.T) {
	for _, code := range []string{"ar", "he", "fa", "ur"} {
		if !IsRTL(code) {
			t.Errorf("IsRTL(%q) = false", code)
		}
	}
	if IsRTL("fr") {
		t.Error("IsRTL(fr) = true")
	}
	if got := GetDirection("ar-AE"); got != "rtl" {
		t.Errorf("GetDirection(ar-AE) = %q", got)
	}
	if got := GetDirection("de"); got != "ltr" {
		t.Errorf("GetDirection(de) = %q", got)
	}
}

func TestSiteLocalesHaveNames(t *testing.T) {
	for _, code := range SiteLocales {
		if _, ok := LanguageNames[code]; !ok {
			t.Errorf("locale %q has no display name", code)
		}
	}
}

func TestPartitionLocales(t *testing.T) {
	p := &stubProvider{unsupported: map[string]bool{"th": true, "ur": true}}

	supported, fallback := PartitionLocales(p, []string{"fr", "th", "de", "ur"})
	if !reflect.DeepEqual(supported, []string{"fr", "de"}) {
		t.Errorf("supported = %v", supported)
	}
	if !reflect.DeepEqual(fallback, []string{"th", "ur"}) {
		t.Errorf("fallback = %v", fallback)
	}

	supported, fallback = PartitionLocales(nil, []string{"fr"})
	if len(supported) != 0 || !reflect.DeepEqual(fallback, []string{"fr"}) {
		t.Errorf("nil provider: supported %v fallback %v", supported, fallback)
	}
}
