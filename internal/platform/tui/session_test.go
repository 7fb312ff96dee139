package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jumper/internal/storage"
)

func sessionKey(m SessionModel, msg tea.KeyMsg) (SessionModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(testConfig, Options{})
	m.Init()

	if !strings.Contains(m.View(), "Stub Jumper") {
		t.Fatal("menu should list registered games")
	}

	// The stub is the only registered game, so the cursor is already on it
	m, cmd := sessionKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || m.game == nil {
		t.Fatal("Enter should start the selected game")
	}
	if cmd == nil {
		t.Error("starting a game should start its tick loop")
	}
	if !m.game.opts.Embedded {
		t.Error("games inside a session should be embedded")
	}

	// Esc on the title screen returns to the menu
	m, _ = sessionKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu || m.game != nil {
		t.Error("Esc on the title screen should return to the menu")
	}

	// A tick left over from the game is dropped by the menu
	next, cmd := m.Update(TickMsg{At: time.Now(), Owner: 1})
	if next.(SessionModel).view != viewMenu || cmd != nil {
		t.Error("stale ticks should not affect the menu")
	}
}

func TestSessionScoreboard(t *testing.T) {
	ledger, err := storage.OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	defer ledger.Close()
	ledger.SaveRun(storage.Run{GameID: "zz_tui_stub", Player: "alice", Score: 42, Coins: 2, Duration: 75 * time.Second})

	m := NewSessionModel(testConfig, Options{Ledger: ledger})
	if !strings.Contains(m.View(), "best 42 m") {
		t.Error("menu should show the session best")
	}

	m, _ = sessionKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScores {
		t.Fatal("Tab should open the scoreboard")
	}
	view := m.View()
	for _, want := range []string{"SESSION SCORES", "42 m", "alice", "1:15"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard should contain %q", want)
		}
	}

	m, _ = sessionKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Error("Esc should return from the scoreboard to the menu")
	}
}

func TestScoreboardClearOnlyForOwnLedger(t *testing.T) {
	tests := []struct {
		name   string
		shared bool
		left   int
	}{
		{"local", false, 0},
		{"shared", true, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger, err := storage.OpenSession()
			if err != nil {
				t.Fatalf("OpenSession() failed: %v", err)
			}
			defer ledger.Close()
			ledger.SaveRun(storage.Run{GameID: "zz_tui_stub", Player: "alice", Score: 42})

			m := NewSessionModel(testConfig, Options{Ledger: ledger, SharedRuns: tc.shared})
			m, _ = sessionKey(m, tea.KeyMsg{Type: tea.KeyTab})
			if m.view != viewScores {
				t.Fatal("Tab should open the scoreboard")
			}
			if got := strings.Contains(m.View(), "clear scores"); got == tc.shared {
				t.Errorf("clear key in help = %v with shared = %v", got, tc.shared)
			}

			m, _ = sessionKey(m, runeKey('x'))
			runs, err := ledger.TopRuns("zz_tui_stub", 10)
			if err != nil {
				t.Fatalf("TopRuns() failed: %v", err)
			}
			if len(runs) != tc.left {
				t.Errorf("%d runs left after x, expected %d", len(runs), tc.left)
			}
			if tc.left == 0 && !strings.Contains(m.View(), "No runs yet") {
				t.Error("scoreboard should refresh after clearing")
			}
		})
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(testConfig, Options{})

	m, cmd := sessionKey(m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestScoreboardWithoutLedger(t *testing.T) {
	sb := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(sb.View(), "No runs yet") {
		t.Error("an empty scoreboard should say so")
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if len(sb.games) > 1 && sb.gameCursor != 1 {
		t.Errorf("Tab should move to the next game, cursor = %d", sb.gameCursor)
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	sb = next.(ScoreboardModel)
	if sb.gameCursor != 0 {
		t.Errorf("Shift+Tab should move back, cursor = %d", sb.gameCursor)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61*time.Second + 600*time.Millisecond, "1:02"},
		{10 * time.Minute, "10:00"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tc.d, got, tc.want)
		}
	}
}
