package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/term2048/internal/config"
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/feedback"
	"github.com/vovakirdan/term2048/internal/games/t2048"
	"github.com/vovakirdan/term2048/internal/platform/tui"
	"github.com/vovakirdan/term2048/internal/storage"
)

var (
	flagVariant string
	flagPreset  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start the game. Without --variant the start screen lets you pick a
variant and a preset and shows the top scores for that pick.

Controls:
  Arrows/WASD/hjkl  - Slide
  Mouse drag        - Slide (swipe)
  Enter             - Start
  P/Esc             - Pause
  R                 - Play again (after a win or game over)
  M                 - Back to the start screen (after a win or game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Presets:
  easy    - 5% of new tiles are 4s
  normal  - 10% of new tiles are 4s
  hard    - 25% of new tiles are 4s

Examples:
  t2048 play
  t2048 play --variant big
  t2048 play --variant classic --preset hard --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagVariant, "variant", "", "Variant to play directly: classic, mini, big, endless")
	cmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg := appCfg
	if flagVariant != "" {
		cfg.Variant = flagVariant
	}
	if flagPreset != "" {
		p, err := config.ParsePreset(flagPreset)
		if err != nil {
			return err
		}
		config.ApplyPreset(&cfg, p)
	}
	if _, err := t2048.Resolve(cfg); err != nil {
		return err
	}

	logger, closeLog := newLogger(cfg, true)
	defer closeLog()

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Input.TickRate,
		Seed:     flagSeed,
	}

	// Open score storage; the game still works without it
	var scores interface {
		tui.ScoreStore
		tui.ScoreLister
	}
	store, err := storage.Open(cfg.Scores.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		scores = store
	}

	notifier := newNotifier(cfg, logger)
	skipMenu := cmd.Flags().Changed("variant")

	for {
		if !skipMenu {
			res, err := tui.RunMenu(scores, cfg, rt, logger)
			if err != nil {
				return fmt.Errorf("start screen: %w", err)
			}
			rt = res.Config

			if res.Quit {
				return nil
			}
			if res.WantsScoreboard {
				back, err := tui.RunScoreboard(scores, rt.ScreenW, rt.ScreenH, logger)
				if err != nil {
					return fmt.Errorf("scoreboard: %w", err)
				}
				if !back {
					return nil
				}
				continue
			}
			cfg = res.Selection
		}
		skipMenu = false

		variant, err := t2048.Resolve(cfg)
		if err != nil {
			return err
		}
		logger.Info("starting game", "variant", variant.ID, "size", variant.Rules.Size, "target", variant.Rules.WinTile)

		game := t2048.New(variant)
		game.SetNotifier(notifier)

		out, err := tui.Run(game, scores, tui.Options{
			Runtime:        rt,
			Logger:         logger,
			SwipeThreshold: cfg.Input.SwipeThreshold,
			Mouse:          cfg.Input.Mouse,
		})
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		rt = out.Config

		if !out.Home {
			return nil
		}
	}
}

// newNotifier wires game events to the log and, if enabled, the terminal bell.
func newNotifier(cfg config.Config, logger *log.Logger) feedback.Notifier {
	d := feedback.NewDispatcher(logger, feedback.NewLogSink(logger))
	if cfg.Feedback.Bell {
		kinds := []feedback.Kind{feedback.WinReached, feedback.GameOverReached}
		if cfg.Feedback.BellOnMove {
			kinds = append(kinds, feedback.GridChanged)
		}
		d.Add(feedback.NewBell(os.Stderr, kinds...))
	}
	return d
}
