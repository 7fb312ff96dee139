package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var (
	flagSimRuns     int
	flagSimTicks    int
	flagSimWidth    int
	flagSimHeight   int
	flagSimClassic  bool
	flagSimAuditLen int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headless over many seeds",
	Long: `Play runs without a terminal, steered by the built-in autopilot.

Run i uses seed (--seed + i), so a report is reproducible. Every seed is
also checked for reachability: the generator must never place two
consecutive platforms further apart than a normal jump can climb.

Examples:
  jumper sim
  jumper sim --runs 100 --seed 1 --max-ticks 20000
  jumper sim --classic --width 40`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of seeds to play")
	simCmd.Flags().IntVar(&flagSimTicks, "max-ticks", 36000, "Tick limit per run")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Simulated screen width")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Simulated screen height")
	simCmd.Flags().BoolVar(&flagSimClassic, "classic", false, "Use the classic ruleset")
	simCmd.Flags().IntVar(&flagSimAuditLen, "audit", 5000, "Platforms generated per seed for the reachability audit")
}

// simResult is one autopilot run.
type simResult struct {
	seed     int64
	snap     jumper.Snapshot
	ticks    int
	finished bool // Fell out of view before the tick limit
	maxGap   float64
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flagSimRuns)
	}
	if flagSimWidth < jumper.MinScreenW || flagSimHeight < jumper.MinScreenH {
		return fmt.Errorf("screen %dx%d is below the playable minimum %dx%d",
			flagSimWidth, flagSimHeight, jumper.MinScreenW, jumper.MinScreenH)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("jumper-sim")
	if err != nil {
		return err
	}
	defer closeLog()

	ledger, err := storage.OpenSession()
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer ledger.Close()

	mode := jumper.ModeStandard
	if flagSimClassic {
		mode = jumper.ModeClassic
	}
	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = 60
	}

	base := flagSeed
	if base == 0 {
		base = 1
	}

	limit := cfg.MaxReachableGap()
	violations := 0
	results := make([]simResult, 0, flagSimRuns)

	for i := 0; i < flagSimRuns; i++ {
		seed := base + int64(i)
		res := simulate(mode, cfg, seed, tickRate)

		res.maxGap = auditGaps(cfg, seed, float64(flagSimWidth), float64(flagSimHeight), flagSimAuditLen)
		if res.maxGap > limit+1e-9 {
			violations++
			logger.Error("unreachable gap generated", "seed", seed, "gap", res.maxGap, "limit", limit)
		}

		run := storage.Run{
			GameID:   gameIDFor(mode),
			Player:   "autopilot",
			Seed:     seed,
			Score:    res.snap.Score,
			Coins:    res.snap.Coins,
			Duration: time.Duration(res.ticks) * time.Second / time.Duration(tickRate),
		}
		if _, err := ledger.SaveRun(run); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		logger.Debug("run finished", "seed", seed, "score", res.snap.Score, "ticks", res.ticks)
		results = append(results, res)
	}

	fmt.Println(resultsTable(results))

	stats, err := ledger.Stats(gameIDFor(mode))
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	fmt.Printf("Runs: %d  Best: %d m  Avg: %.1f m  Coins: %d\n",
		stats.Runs, stats.Best, stats.AvgScore, stats.TotalCoins)
	fmt.Printf("Reachable gap limit: %.2f  Audited platforms per seed: %d\n", limit, flagSimAuditLen)

	if violations > 0 {
		return fmt.Errorf("%d of %d seeds generated an unreachable gap", violations, flagSimRuns)
	}
	fmt.Println("Reachability audit passed.")
	return nil
}

// simulate plays one seed until the player falls or the tick limit hits.
func simulate(mode jumper.Mode, cfg config.JumperConfig, seed int64, tickRate int) simResult {
	g := jumper.NewWithConfig(mode, cfg)
	g.Reset(core.RuntimeConfig{
		ScreenW:  flagSimWidth,
		ScreenH:  flagSimHeight,
		TickRate: tickRate,
		Seed:     seed,
	})

	var pilot jumper.Autopilot
	res := simResult{seed: seed}
	for res.ticks < flagSimTicks {
		st := g.Step(pilot.Frame(g)).State
		res.ticks++
		if st.GameOver {
			res.finished = true
			break
		}
	}
	res.snap = g.Snapshot()
	return res
}

// auditGaps generates n platforms the way a run would and returns the
// largest vertical gap between consecutive ones.
func auditGaps(cfg config.JumperConfig, seed int64, width, height float64, n int) float64 {
	sp := jumper.NewSpawner(seed, width, cfg)
	y := height
	maxGap := 0.0
	for i := 0; i < n; i++ {
		p := sp.Next(y)
		if gap := y - p.Y; gap > maxGap {
			maxGap = gap
		}
		y = p.Y
	}
	return maxGap
}

func gameIDFor(mode jumper.Mode) string {
	if mode == jumper.ModeClassic {
		return "jumper_classic"
	}
	return "jumper"
}

func resultsTable(results []simResult) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("Seed", "Height", "Coins", "Ticks", "End", "Max gap", "Dropped")

	for _, r := range results {
		end := "fell"
		if !r.finished {
			end = "limit"
		}
		t.Row(
			fmt.Sprintf("%d", r.seed),
			fmt.Sprintf("%d m", r.snap.Score),
			fmt.Sprintf("%d", r.snap.Coins),
			fmt.Sprintf("%d", r.ticks),
			end,
			fmt.Sprintf("%.2f", r.maxGap),
			fmt.Sprintf("%d", r.snap.Dropped),
		)
	}
	return t.String()
}
