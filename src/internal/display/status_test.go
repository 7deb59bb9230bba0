package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestStatusRendererIcons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		print func(*StatusRenderer, string)
		icon  string
	}{
		{name: "info", print: (*StatusRenderer).PrintInfo, icon: "ℹ️"},
		{name: "success", print: (*StatusRenderer).PrintSuccess, icon: "✅"},
		{name: "warning", print: (*StatusRenderer).PrintWarning, icon: "⚠️"},
		{name: "error", print: (*StatusRenderer).PrintError, icon: "❌"},
		{name: "progress", print: (*StatusRenderer).PrintProgress, icon: "🔄"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tt.print(NewStatusRenderer(&buf, false), "something happened")

			want := tt.icon + " something happened\n"
			if buf.String() != want {
				t.Errorf("output = %q, want %q", buf.String(), want)
			}
		})
	}
}

func TestPrintChangeLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	sr := NewStatusRenderer(&buf, false)
	sr.PrintChangeLine("create", "content/site.txt")

	if !strings.HasPrefix(buf.String(), "  create") || !strings.Contains(buf.String(), "content/site.txt") {
		t.Errorf("output = %q, want an indented action and path", buf.String())
	}
}
