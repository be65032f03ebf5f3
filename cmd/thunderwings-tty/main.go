// Command thunderwings-tty 在终端里运行一局战斗
//
// 按键：方向键/WASD 移动，p 或 Esc 暂停，F5 保存，F9 读档，r 重新开始，q 退出。
// -v/--version 只打印版本信息。
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/game"
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/decker502/thunderwings/pkg/systems"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
)

const frameInterval = 16 * time.Millisecond

// Game 终端前端的主循环状态
type Game struct {
	screen  tcell.Screen
	opts    *config.RuntimeOptions
	balance *config.BalanceConfig
	clock   utils.Clock
	keys    *keyState
	sound   systems.SoundPlayer
	saves   *game.BattleSerializer
	log     zerolog.Logger

	battle  *systems.Battle
	surface *surface
	notice  string
}

// NewGame 创建一局战斗；screen 由调用方初始化
func NewGame(screen tcell.Screen, opts *config.RuntimeOptions, balance *config.BalanceConfig, sound systems.SoundPlayer, saves *game.BattleSerializer) (*Game, error) {
	clock := utils.RealClock{}
	g := &Game{
		screen:  screen,
		opts:    opts,
		balance: balance,
		clock:   clock,
		keys:    newKeyState(clock),
		sound:   sound,
		saves:   saves,
		log:     logger.For("tty"),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) restart() error {
	deps := systems.BattleDeps{
		Balance:  g.balance,
		Clock:    g.clock,
		Sound:    g.sound,
		Keyboard: g.keys,
	}
	if g.opts.Seed != 0 {
		deps.Random = utils.NewRandom(g.opts.Seed)
	}
	battle, err := systems.NewBattle(deps)
	if err != nil {
		return fmt.Errorf("failed to create battle: %w", err)
	}
	g.battle = battle
	g.surface = newSurface(g.screen, battle)
	g.keys.Reset()
	g.notice = ""
	return nil
}

// handleKey 处理一次按键，返回 false 表示退出
func (g *Game) handleKey(ev *tcell.EventKey) bool {
	if key, ok := directionOf(ev); ok {
		g.keys.Press(key)
		return true
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		g.togglePause()
	case tcell.KeyF5:
		g.save()
	case tcell.KeyF9:
		g.load()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'p', 'P':
			g.togglePause()
		case 'r', 'R':
			if !g.battle.Running() {
				if err := g.restart(); err != nil {
					g.log.Error().Err(err).Msg("Restart failed")
					return false
				}
			}
		}
	}
	return true
}

func (g *Game) togglePause() {
	if !g.battle.Running() {
		return
	}
	if g.battle.Paused() {
		g.battle.Resume()
		g.notice = ""
		return
	}
	g.battle.Pause()
	g.keys.Reset()
}

func (g *Game) save() {
	if err := g.saves.Save(g.battle, g.opts.SaveSlot); err != nil {
		g.log.Warn().Err(err).Msg("Save failed")
		g.notice = "Save failed"
		return
	}
	g.notice = "Progress saved"
}

// load 读档到一局新战斗；失败时保留当前战斗
func (g *Game) load() {
	current, currentSurface := g.battle, g.surface
	if err := g.restart(); err != nil {
		g.log.Error().Err(err).Msg("Restart failed")
		return
	}
	if err := g.saves.Load(g.battle, g.opts.SaveSlot); err != nil {
		g.battle, g.surface = current, currentSurface
		switch {
		case errors.Is(err, game.ErrNoSavedBattle):
			g.notice = "No saved battle"
		default:
			g.log.Warn().Err(err).Msg("Load failed")
			g.notice = "Load failed"
		}
		return
	}
	g.notice = "Battle loaded"
}

// overlay 当前需要居中显示的提示
func (g *Game) overlay() string {
	switch {
	case !g.battle.Running():
		return " GAME OVER   r: restart   q: quit "
	case g.battle.Paused():
		msg := " PAUSED   p: resume   F5: save   F9: load   q: quit "
		if g.notice != "" {
			msg = " " + g.notice + " |" + msg
		}
		return msg
	case g.notice != "":
		return " " + g.notice + " "
	}
	return ""
}

// step 推进一帧并绘制
func (g *Game) step() error {
	if g.battle.Running() {
		if _, err := g.battle.Tick(); err != nil {
			return fmt.Errorf("battle tick failed: %w", err)
		}
	}
	g.surface.draw(g.overlay())
	return nil
}

// pollEvents 把终端事件转发到 events；屏幕 Fini 后 PollEvent 返回 nil，随即关闭 events 退出
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// loop 主循环：按固定间隔推进战斗，直到退出键或屏幕关闭
func (g *Game) loop() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
		case <-ticker.C:
			if err := g.step(); err != nil {
				return err
			}
		}
	}
}

// openLogFile 终端被画面占用，日志写到临时目录
func openLogFile() (*os.File, error) {
	return os.OpenFile(filepath.Join(os.TempDir(), "thunderwings-tty.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func loadBalance(path string, log zerolog.Logger) *config.BalanceConfig {
	balance, err := config.LoadBalanceConfig(path)
	if err != nil {
		log.Warn().Err(err).Msg("Balance file unavailable, using built-in table")
		return config.DefaultBalance()
	}
	return balance
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run 返回进程退出码；所有资源在返回前通过 defer 释放
func run(args []string) int {
	opts, err := config.LoadRuntime(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.ShowVersion {
		for _, line := range config.VersionLines(config.ReadBuildInfo()) {
			fmt.Println(line)
		}
		return 0
	}

	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logFile.Close()
	log := logger.Setup(opts.LogLevel, logFile)
	log.Info().Str("version", config.Version).Msg("Welcome!")

	balance := loadBalance(opts.BalanceFile, log)

	var store *gdata.Manager
	if s, err := gdata.Open(gdata.Config{AppName: opts.AppName}); err != nil {
		log.Warn().Err(err).Msg("Persistent storage unavailable, saving disabled")
	} else {
		store = s
	}

	var sound systems.SoundPlayer = systems.NopSound{}
	if !opts.Headless {
		if tones, err := newTonePlayer(); err != nil {
			log.Warn().Err(err).Msg("Audio unavailable")
		} else {
			defer tones.Close()
			sound = tones
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open terminal")
		return 1
	}
	if err := screen.Init(); err != nil {
		log.Error().Err(err).Msg("Failed to init terminal")
		return 1
	}
	defer screen.Fini()

	g, err := NewGame(screen, opts, balance, sound, game.NewBattleSerializer(store))
	if err != nil {
		log.Error().Err(err).Msg("Failed to start")
		return 1
	}
	if err := g.loop(); err != nil {
		log.Error().Err(err).Msg("Game loop stopped")
		return 1
	}
	return 0
}
