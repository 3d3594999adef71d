package gobuild

import (
	"errors"
	"testing"
)

func TestLDFlags(t *testing.T) {
	tests := []struct {
		name       string
		goos       string
		versionVar string
		version    string
		want       string
	}{
		{name: "linux", goos: "linux", want: "-s -w"},
		{name: "darwin", goos: "darwin", want: "-s -w"},
		{name: "windows hides console", goos: "windows", want: "-s -w -H windowsgui"},
		{name: "stamp with default var", goos: "linux", version: "1.2.3", want: "-s -w -X main.version=1.2.3"},
		{name: "stamp with custom var", goos: "windows", versionVar: "main.Build", version: "2.0.0", want: "-s -w -H windowsgui -X main.Build=2.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LDFlags(tt.goos, tt.versionVar, tt.version); got != tt.want {
				t.Errorf("LDFlags = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.2.3", want: "1.2.3"},
		{in: "v1.2.3", want: "1.2.3"},
		{in: "1.2.3-rc.1", want: "1.2.3-rc.1"},
		{in: "1.2", want: "1.2.0"},
		{in: "not-a-version", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("ParseVersion(%q) err = %v, want ErrInvalidVersion", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVersion(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
