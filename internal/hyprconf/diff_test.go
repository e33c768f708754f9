package hyprconf

import (
	"reflect"
	"testing"
)

func TestDiff_PairsLinesByOutputName(t *testing.T) {
	current := "# generated\n" +
		"monitor = DP-1, 1920x1080, 0x0, 1, transform, 0\n" +
		"monitor = DP-2, 1920x1080, 1920x0, 1, transform, 0\n" +
		"monitor = HDMI-A-1, 1280x1024, 3840x0, 1\n"
	next := "monitor = DP-2, 1920x1080, 1950x0, 1, transform, 0\n" +
		"monitor = DP-1, 1920x1080, 0x0, 1, transform, 0\n"

	got := Diff(current, next)
	want := []DiffLine{
		{Removed, "monitor = DP-2, 1920x1080, 1920x0, 1, transform, 0"},
		{Added, "monitor = DP-2, 1920x1080, 1950x0, 1, transform, 0"},
		{Unchanged, "monitor = DP-1, 1920x1080, 0x0, 1, transform, 0"},
		{Removed, "# generated"},
		{Removed, "monitor = HDMI-A-1, 1280x1024, 3840x0, 1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Diff() =\n%+v\nwant\n%+v", got, want)
	}
	if !HasChanges(got) {
		t.Fatalf("HasChanges() = false")
	}
}

func TestDiff_IdenticalAndEmpty(t *testing.T) {
	text := "monitor = DP-1, 1920x1080, 0x0, 1, transform, 0\n"

	same := Diff(text+"\n\n", text)
	if len(same) != 1 || same[0].Kind != Unchanged || HasChanges(same) {
		t.Fatalf("identical text diff = %+v", same)
	}

	fresh := Diff("", text)
	if len(fresh) != 1 || fresh[0].Kind != Added {
		t.Fatalf("new file diff = %+v", fresh)
	}

	if got := Diff("", ""); len(got) != 0 {
		t.Fatalf("empty diff = %+v", got)
	}
}

func TestMonitorName(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{"monitor = DP-1, preferred, auto, 1", "DP-1", true},
		{"monitor=eDP-1,1920x1080,0x0,1", "eDP-1", true},
		{"monitors = DP-1, 1x1, 0x0, 1", "", false},
		{"# monitor = DP-1", "", false},
		{"monitor = , 1x1", "", false},
	}
	for _, tt := range tests {
		name, ok := monitorName(tt.line)
		if name != tt.name || ok != tt.ok {
			t.Errorf("monitorName(%q) = (%q,%v), want (%q,%v)", tt.line, name, ok, tt.name, tt.ok)
		}
	}
}
