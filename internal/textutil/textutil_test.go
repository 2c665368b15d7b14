package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"  spaces  ", []string{"spaces"}},
		{"tab\tseparated\ttokens", []string{"tab", "separated", "tokens"}},
		{"l' homme , le", []string{"l'", "homme", ",", "le"}},
		{"café résumé", []string{"café", "résumé"}},
		{"", []string{}},
		{"   ", []string{}},
	}
	for _, tt := range tests {
		got := Tokenize(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello", "hello"},
		{"UPPER", "upper"},
		{"Été", "été"},
		{"NULL", "null"},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"The", "House", "of", "COMMONS"})
	want := []string{"the", "house", "of", "commons"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAll = %v, want %v", got, want)
	}
}
