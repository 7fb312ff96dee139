package jumper

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/registry"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(seed int64) *Game {
	g := NewWithConfig(ModeStandard, config.DefaultJumperConfig())
	g.Reset(runtimeConfig(seed))
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func release(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Release(a)
	}
	return in
}

func hasCue(cues []core.Cue, want core.Cue) bool {
	for _, c := range cues {
		if c == want {
			return true
		}
	}
	return false
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical runs
	g1, g2 := newTestGame(12345), newTestGame(12345)
	var a1, a2 Autopilot

	for i := 0; i < 3000; i++ {
		g1.Step(a1.Frame(g1))
		g2.Step(a2.Frame(g2))

		if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
			t.Fatalf("tick %d: snapshots differ:\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestGameCameraNeverMovesDown(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(seed)
		var pilot Autopilot
		prev := g.Snapshot().CameraY

		for i := 0; i < 4000; i++ {
			in := pilot.Frame(g)
			if g.State().GameOver {
				in.Set(core.ActionRestart)
				pilot.Reset()
			}

			res := g.Step(in)
			snap := g.Snapshot()
			if hasCue(res.Cues, core.CueRestart) {
				prev = snap.CameraY
				continue
			}
			if snap.CameraY > prev {
				t.Fatalf("seed %d tick %d: camera moved down %v -> %v", seed, i, prev, snap.CameraY)
			}
			prev = snap.CameraY
		}
	}
}

func TestGameFirstTickBounces(t *testing.T) {
	g := newTestGame(1)
	res := g.Step(core.NewInputFrame())

	if !hasCue(res.Cues, core.CueJump) {
		t.Errorf("player starts on the anchor platform and should bounce, cues=%v", res.Cues)
	}
	if g.Snapshot().State != StateRising {
		t.Errorf("state after first tick = %v, expected rising", g.Snapshot().State)
	}
}

func TestGameScoreFromCamera(t *testing.T) {
	cfg := config.DefaultJumperConfig()
	cfg.Score.UnitsPerMeter = 50
	g := NewWithConfig(ModeStandard, cfg)
	g.Reset(runtimeConfig(1))

	// Put the player above the follow line, far from any platform
	follow := 24 * cfg.Camera.FollowRatio
	g.player.Y = -500 + follow - 1
	g.player.VY = -0.5

	res := g.Step(core.NewInputFrame())
	if res.State.Score != 10 {
		t.Errorf("score = %d at camera %v, expected 10", res.State.Score, g.camera.Y)
	}
	if res.State.Best != 10 {
		t.Errorf("best = %d, expected 10", res.State.Best)
	}
}

func TestGameDeathFreezesScore(t *testing.T) {
	g := newTestGame(1)
	g.camera.Y = -500
	g.score, g.best = 250, 250
	g.player.Y = g.camera.Y + 23.5
	g.player.VY = 1.2

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("player below the camera should die")
	}
	if !hasCue(res.Cues, core.CueGameOver) {
		t.Errorf("death should emit a game over cue, got %v", res.Cues)
	}
	if res.State.Score != 250 {
		t.Errorf("score changed on death: %d", res.State.Score)
	}

	before := g.Snapshot()
	for i := 0; i < 50; i++ {
		in := press(core.ActionLeft, core.ActionPause, core.ActionConfirm)
		res = g.Step(in)
		if res.State.Score != 250 || !res.State.GameOver || res.State.Paused {
			t.Fatalf("dead game must ignore everything but restart, got %+v", res.State)
		}
		if len(res.Cues) != 0 {
			t.Fatalf("dead game should stay silent, got %v", res.Cues)
		}
	}
	if after := g.Snapshot(); after != before {
		t.Errorf("dead game state changed:\n%+v\n%+v", before, after)
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(1)

	// Restart is ignored while alive
	g.Step(press(core.ActionRestart))
	if g.runs != 0 {
		t.Fatal("restart should only be accepted when dead")
	}

	g.camera.Y = -500
	g.score, g.best = 250, 250
	g.player.Y, g.player.VY = g.camera.Y+23.5, 1.2
	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("setup: player should be dead")
	}

	res := g.Step(press(core.ActionRestart))
	if !hasCue(res.Cues, core.CueRestart) {
		t.Errorf("restart should emit a restart cue, got %v", res.Cues)
	}
	st := res.State
	if st.GameOver || st.Score != 0 || st.Coins != 0 {
		t.Errorf("restart should start a fresh run, got %+v", st)
	}
	if st.Best != 250 {
		t.Errorf("best should survive restart, got %d", st.Best)
	}
	if g.camera.Y != 0 || g.runs != 1 {
		t.Errorf("camera=%v runs=%d after restart", g.camera.Y, g.runs)
	}

	// The next run uses a different seed than the first
	fresh := newTestGame(1)
	if g.Platforms()[1] == fresh.Platforms()[1] {
		t.Error("restarted run should not replay the first run's level")
	}
}

func TestGameResetIdempotent(t *testing.T) {
	g := newTestGame(77)
	first := g.Snapshot()
	firstPlats := g.Platforms()

	var pilot Autopilot
	for i := 0; i < 500; i++ {
		g.Step(pilot.Frame(g))
	}

	g.Reset(runtimeConfig(77))
	g.Reset(runtimeConfig(77))
	again := g.Snapshot()
	again.Best = first.Best // session best is kept across Reset

	if again != first {
		t.Errorf("Reset should restore the initial state:\n%+v\n%+v", first, again)
	}
	plats := g.Platforms()
	if len(plats) != len(firstPlats) {
		t.Fatalf("platform count %d, expected %d", len(plats), len(firstPlats))
	}
	for i := range plats {
		if plats[i] != firstPlats[i] {
			t.Fatalf("platform %d differs after Reset: %+v vs %+v", i, plats[i], firstPlats[i])
		}
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame())

	res := g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("P should pause")
	}
	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Snapshot() != before {
		t.Error("paused game must not advance")
	}

	res = g.Step(press(core.ActionPause))
	if res.State.Paused {
		t.Error("second P should resume")
	}
	if g.Snapshot().Tick != before.Tick+1 {
		t.Error("resumed game should advance on the same tick")
	}
}

func TestGameHeldSteering(t *testing.T) {
	g := newTestGame(1)

	g.Step(press(core.ActionRight))
	if g.player.VX <= 0 {
		t.Fatalf("pressing right should move right, vx=%v", g.player.VX)
	}

	// Held without new events
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
		if g.player.VX <= 0 {
			t.Fatalf("tick %d: held right should keep moving, vx=%v", i, g.player.VX)
		}
	}

	// Most recent press wins while both are held
	g.Step(press(core.ActionLeft))
	if g.player.VX >= 0 {
		t.Errorf("left pressed after right should win, vx=%v", g.player.VX)
	}

	g.Step(release(core.ActionLeft))
	if g.player.VX <= 0 {
		t.Errorf("releasing left should fall back to held right, vx=%v", g.player.VX)
	}

	g.Step(release(core.ActionRight))
	if g.player.VX != 0 {
		t.Errorf("releasing everything should stop, vx=%v", g.player.VX)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "0 m") || !strings.Contains(hud, "Best") {
		t.Errorf("HUD row missing height or best: %q", hud)
	}
	if !strings.ContainsRune(screen.String(), BodyChar) {
		t.Error("player should be drawn")
	}
	if !strings.ContainsRune(screen.String(), NormalChar) {
		t.Error("platforms should be drawn")
	}

	g.camera.Y = -500
	g.player.Y, g.player.VY = g.camera.Y+23.5, 1.2
	g.Step(core.NewInputFrame())
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over box should be drawn after death")
	}
}

func TestGameRenderWrapsPlayer(t *testing.T) {
	g := newTestGame(1)
	g.player.X = 79
	g.player.Y = 5

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// Top row of the sprite: head, body, head across columns 79, 0, 1
	row := g.camera.ToScreen(g.player.Y)
	if screen.GetCell(79, row).Rune != HeadChar || screen.GetCell(0, row).Rune != BodyChar {
		t.Errorf("player at the right edge should be split across both edges: %q", screen.Row(row))
	}
	if screen.GetCell(0, row).Color != g.player.Color {
		t.Error("player cells should use the player color")
	}
}

func TestGameTooSmall(t *testing.T) {
	g := NewWithConfig(ModeStandard, config.DefaultJumperConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60, Seed: 1})

	res := g.Step(press(core.ActionRight))
	if res.State.GameOver {
		t.Error("a tiny screen should not end the game")
	}

	screen := core.NewScreen(10, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Too small") {
		t.Errorf("expected a size warning, got:\n%s", screen.String())
	}
}

func TestClassicModeOnlyNormal(t *testing.T) {
	g := NewWithConfig(ModeClassic, config.DefaultJumperConfig())
	g.Reset(runtimeConfig(3))
	if g.ID() != "jumper_classic" {
		t.Errorf("ID() = %q", g.ID())
	}

	var pilot Autopilot
	for i := 0; i < 2000; i++ {
		g.Step(pilot.Frame(g))
		for _, p := range g.Platforms() {
			if p.Kind != KindNormal || p.Coin {
				t.Fatalf("classic mode spawned %+v", p)
			}
		}
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"jumper", "jumper_classic"} {
		if !registry.Exists(id) {
			t.Errorf("%q should be registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestAutopilotSteersTowardTarget(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame()) // bounce off the anchor

	var pilot Autopilot
	in := pilot.Frame(g)
	if len(in.Events) > 1 {
		t.Errorf("autopilot should press at most one direction, got %v", in.Events)
	}

	// Keeps the key held: no new events while the direction is unchanged
	if len(in.Events) == 1 {
		g.Step(in)
		next := pilot.Frame(g)
		for _, ev := range next.Events {
			if !ev.Released && ev.Action == in.Events[0].Action {
				t.Error("autopilot should not re-press a held direction")
			}
		}
	}
}
