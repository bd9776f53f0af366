package home

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/gramiz/internal/screen"
)

func TestHomeScreen_ShowsTallyAfterLoad(t *testing.T) {
	h := New(nil, nil)

	var scr screen.Screen = h
	scr, _ = scr.Update(overviewMsg{Correct: 3, Total: 4})

	view := scr.View(80, 24)
	if !strings.Contains(view, "Answered: 4") || !strings.Contains(view, "Correct: 3") {
		t.Errorf("view missing tally:\n%s", view)
	}
}

func TestHomeScreen_ShowsEmptyStateWithoutAnswers(t *testing.T) {
	h := New(nil, nil)

	var scr screen.Screen = h
	scr, _ = scr.Update(overviewMsg{})

	if !strings.Contains(scr.View(80, 24), "No answers yet") {
		t.Error("view missing empty-state line")
	}
}

// A failed tally load must be visible, not rendered as an empty log.
func TestHomeScreen_SurfacesTallyLoadError(t *testing.T) {
	h := New(nil, nil)

	var scr screen.Screen = h
	scr, _ = scr.Update(overviewMsg{Err: errors.New("database is locked")})

	view := scr.View(80, 24)
	if !strings.Contains(view, "Stats unavailable") {
		t.Errorf("view missing unavailable line:\n%s", view)
	}
	if !strings.Contains(view, "database is locked") {
		t.Errorf("view missing error detail:\n%s", view)
	}
	if strings.Contains(view, "No answers yet") {
		t.Error("load error must not render as an empty log")
	}
}
