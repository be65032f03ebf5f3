// Package app 提供游戏应用的核心包装器
//
// 该包把启动流程（共享服务、资源加载、首个场景）从 main 包中提取出来，
// 并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/game"
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/decker502/thunderwings/pkg/scenes"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// 启动时加载的资源组
var startupGroups = []string{"menu", "battle"}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	state        *game.GameState
	width        int
	height       int
	log          zerolog.Logger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	windowScale              float64
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化内嵌数据。
// 资源组加载失败是致命错误（包装 game.ErrAssetLoad）。
func NewApp(opts *config.RuntimeOptions) (*App, error) {
	log := logger.For("app")

	balance, err := config.LoadBalanceConfig(opts.BalanceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	var audioContext *audio.Context
	if !opts.Headless {
		audioContext = audio.NewContext(48000)
	}

	state, err := game.NewGameState(game.GameStateConfig{
		AppName:      opts.AppName,
		AssetsDir:    opts.AssetsDir,
		SaveSlot:     opts.SaveSlot,
		AudioContext: audioContext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game state: %w", err)
	}
	if err := state.Settings.Load(); err != nil {
		log.Warn().Err(err).Msg("Settings unavailable, using defaults")
	}
	if state.Settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	for _, group := range startupGroups {
		if err := state.Resources.LoadResourceGroup(group); err != nil {
			return nil, err
		}
	}

	sceneManager := game.NewSceneManager()
	ctx := &scenes.Context{
		State:   state,
		Scenes:  sceneManager,
		Balance: balance,
		Seed:    opts.Seed,
	}
	sceneManager.SwitchTo(scenes.SceneMainMenu, scenes.NewMainMenuScene(ctx))

	log.Info().
		Str("assets", opts.AssetsDir).
		Str("slot", opts.SaveSlot).
		Bool("canSave", state.CanSave()).
		Msg("App initialized")

	return &App{
		sceneManager: sceneManager,
		state:        state,
		width:        int(balance.Screen.Width),
		height:       int(balance.Screen.Height),
		log:          log,
		windowScale:  opts.WindowScale,
	}, nil
}

// WindowSize 按缩放比例计算的初始窗口大小
func (a *App) WindowSize() (int, int) {
	return int(float64(a.width) * a.windowScale), int(float64(a.height) * a.windowScale)
}

// Update 更新游戏逻辑
// 场景管理器请求结束后返回 ebiten.Termination
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.WindowSize())
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		if fullscreen {
			ebiten.SetFullscreen(true)
		} else {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}
		a.state.Settings.Update(func(s *game.GameSettings) { s.Fullscreen = fullscreen })
	}

	// M 开关背景音乐
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.ToggleMusic()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	if err := a.sceneManager.Update(deltaTime); err != nil {
		return err
	}
	if a.sceneManager.Terminated() {
		a.log.Info().Str("scene", a.sceneManager.CurrentName()).Msg("Exit requested")
		return ebiten.Termination
	}
	return nil
}

// ToggleMusic 开关背景音乐并立即生效，设置在退出时保存
func (a *App) ToggleMusic() {
	a.state.Settings.Update(func(s *game.GameSettings) { s.MusicEnabled = !s.MusicEnabled })
	enabled := a.state.Settings.GetSettings().MusicEnabled
	a.state.Audio.ApplyVolume()
	if enabled {
		a.state.Audio.PlayMusic(types.MusicBackground)
	}
	a.log.Info().Bool("enabled", enabled).Msg("Music toggled")
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色，游戏画面使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Shutdown 退出前保存设置
func (a *App) Shutdown() {
	if a.state == nil {
		return
	}
	if a.state.Audio != nil {
		a.state.Audio.StopMusic()
	}
	if err := a.state.Settings.Save(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to save settings")
	}
}
