package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/internal/showcase"
	"github.com/aretw0/ludus/pkg/audio"
	"github.com/aretw0/ludus/pkg/loop"
	"github.com/aretw0/ludus/pkg/singleton"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive terminal demo",
	Long: `Opens the menu/gameplay demo in the terminal.

Keys: space toggles menu and gameplay, r resumes the last game, c runs a
count command, v queues one, q or Esc quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("metrics-addr")
		withSound, _ := cmd.Flags().GetBool("sound")
		logFile, _ := cmd.Flags().GetString("log-file")

		// The terminal belongs to the screen: logs go to a file or nowhere.
		if logFile == "" {
			logger = logging.NewNop()
		} else {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			level, _ := logging.ParseLevel(cfg.LogLevel)
			logger = logging.NewWithWriter(f, level)
		}
		return play(cmd.Context(), addr, withSound)
	},
}

var sound = singleton.NewLazy(func() *audio.Master {
	prefs := audio.NewMemoryPrefs()
	prefs.SetFloat(audio.Music.Key(), cfg.Audio.MusicVolume)
	prefs.SetFloat(audio.Effect.Key(), cfg.Audio.EffectVolume)
	return audio.NewMaster(audio.WithLogger(logger), audio.WithPrefs(prefs))
})

func play(parent context.Context, addr string, withSound bool) error {
	var master *audio.Master
	if withSound {
		master = sound.Get()
		if err := master.Open(); err != nil {
			return fmt.Errorf("open audio: %w", err)
		}
		defer master.Close()
	}

	a, err := newApp(cfg, logger, master)
	if err != nil {
		return err
	}
	defer a.close()
	if err := current.Claim(a); err != nil {
		return err
	}
	defer current.Clear()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()

	view := showcase.NewView()
	a.host.Attach(loop.TickerFunc(func(time.Duration) { view.Draw(screen, a.demo) }))
	if err := a.demo.Start(); err != nil {
		return err
	}

	signals := loop.NewSignalManager(parent)
	defer signals.Stop()
	ctx, cancel := context.WithCancel(signals.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		defer fini()
		return a.host.Run(ctx)
	})

	g.Go(func() error {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return nil
			case *tcell.EventResize:
				a.host.Post(screen.Sync)
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					a.host.Stop()
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					r := ev.Rune()
					a.host.Post(func() { a.demo.Press(r) })
				}
			}
		}
	})

	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: a.handler(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			logger.Info("debug server listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("debug server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("metrics-addr", "", "Serve metrics, state and events on this address (e.g. :9090)")
	playCmd.Flags().Bool("sound", false, "Play music and effects through the default audio device")
	playCmd.Flags().String("log-file", "", "Append logs to this file while the screen is open")
}
