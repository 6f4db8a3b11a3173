package help

import (
	"strings"
	"testing"
)

func TestRender_ListsEverySection(t *testing.T) {
	out := Render(100, 60)

	for _, section := range Sections() {
		if !strings.Contains(out, section.Title) {
			t.Errorf("expected section %q in help", section.Title)
		}
	}
	if !strings.Contains(out, "Clear all filters") {
		t.Error("expected filter key bindings in help")
	}
}
