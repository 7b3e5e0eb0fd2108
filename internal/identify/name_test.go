package identify_test

import (
	"testing"

	"romdex/internal/identify"
)

func TestIsROMFile(t *testing.T) {
	cases := map[string]bool{
		"game.nes":          true,
		"GAME.NES":          true,
		"archive.zip":       true,
		"disc.iso":          true,
		"/a/b/c/game.sfc":   true,
		"readme.txt":        false,
		"game.nes.bak":      false,
		"noextension":       false,
		"track01.bin":       true,
		"compressed.7z":     true,
		"exotic.chd":        true,
		"genesis cart.32x":  true,
		"mastersystem.sms":  true,
		"gamegear game.gg":  true,
		"homebrew.rom":      true,
		"cuesheet file.cue": true,
	}
	for path, want := range cases {
		if got := identify.IsROMFile(path); got != want {
			t.Errorf("IsROMFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want identify.NameComponents
	}{
		{
			in:   "Super Game (USA).sfc",
			want: identify.NameComponents{Title: "Super Game", Region: "USA"},
		},
		{
			in: "Super Game (Europe) (v1.1) [!].smc",
			want: identify.NameComponents{
				Title: "Super Game", Region: "Europe", Version: "1.1", Attributes: []string{"!"},
			},
		},
		{
			in:   "Plain Game.nes",
			want: identify.NameComponents{Title: "Plain Game"},
		},
		{
			in:   "Game (v2.0).gb",
			want: identify.NameComponents{Title: "Game", Version: "2.0"},
		},
	}

	for _, tt := range tests {
		got := identify.ParseName(tt.in)
		if got.Title != tt.want.Title || got.Region != tt.want.Region || got.Version != tt.want.Version {
			t.Errorf("ParseName(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if len(got.Attributes) != len(tt.want.Attributes) {
			t.Errorf("ParseName(%q) attributes = %v, want %v", tt.in, got.Attributes, tt.want.Attributes)
		}
	}
}

func TestStandardizedNameRoundTrip(t *testing.T) {
	original := "Super Game (Europe) (v1.1) [!].smc"
	components := identify.ParseName(original)
	if got := identify.StandardizedName(components, ".smc"); got != original {
		t.Fatalf("round trip = %q, want %q", got, original)
	}
}
