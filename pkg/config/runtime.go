package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RuntimeOptions 启动参数（命令行 > 环境变量 > 配置文件 > 默认值）
type RuntimeOptions struct {
	LogLevel    string  // trace/debug/info/warn/error
	AssetsDir   string  // 贴图、音效、字体所在目录
	BalanceFile string  // 数值表路径，data/ 前缀表示内嵌文件
	Seed        uint64  // 随机种子，0 表示使用当前时间
	SaveSlot    string  // 存档槽位名
	AppName     string  // gdata 存储使用的应用名
	WindowScale float64 // 窗口缩放
	Headless    bool    // 终端前端：无音频
	ShowVersion bool    // 只打印版本信息后退出
}

// EnvPrefix 环境变量前缀，例如 THUNDERWINGS_LOGLEVEL
const EnvPrefix = "THUNDERWINGS"

// RegisterFlags 在 flag 集合上注册启动参数
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("assets-dir", "assets", "directory containing textures, sounds and fonts")
	fs.String("balance-file", DefaultBalancePath, "balance table (data/ prefix reads the embedded copy)")
	fs.Uint64("seed", 0, "random seed (0 seeds from the clock)")
	fs.String("save-slot", "default", "battle save slot")
	fs.String("app-name", "thunderwings", "application name used for save storage")
	fs.Float64("window-scale", 1.0, "window scale relative to the logical screen")
	fs.Bool("headless", false, "disable audio output")
	fs.String("config", "", "optional config file (yaml/json/toml)")
	fs.BoolP("version", "v", false, "print version information and exit")
}

// LoadRuntime 解析命令行参数并合并环境变量和配置文件
//
// 参数：
//   - args: 命令行参数（不含程序名）
//
// 返回：
//   - *RuntimeOptions: 合并后的启动参数
//   - error: 参数解析或配置文件读取失败
func LoadRuntime(args []string) (*RuntimeOptions, error) {
	fs := pflag.NewFlagSet("thunderwings", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	v.SetDefault("logLevel", "info")
	v.SetDefault("assetsDir", "assets")
	v.SetDefault("balanceFile", DefaultBalancePath)
	v.SetDefault("seed", 0)
	v.SetDefault("saveSlot", "default")
	v.SetDefault("appName", "thunderwings")
	v.SetDefault("windowScale", 1.0)
	v.SetDefault("headless", false)
	v.SetDefault("version", false)

	bindings := map[string]string{
		"logLevel":    "log-level",
		"assetsDir":   "assets-dir",
		"balanceFile": "balance-file",
		"seed":        "seed",
		"saveSlot":    "save-slot",
		"appName":     "app-name",
		"windowScale": "window-scale",
		"headless":    "headless",
		"version":     "version",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("thunderwings")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	opts := &RuntimeOptions{
		LogLevel:    v.GetString("logLevel"),
		AssetsDir:   v.GetString("assetsDir"),
		BalanceFile: v.GetString("balanceFile"),
		Seed:        v.GetUint64("seed"),
		SaveSlot:    v.GetString("saveSlot"),
		AppName:     v.GetString("appName"),
		WindowScale: v.GetFloat64("windowScale"),
		Headless:    v.GetBool("headless"),
		ShowVersion: v.GetBool("version"),
	}
	if opts.WindowScale <= 0 {
		return nil, fmt.Errorf("windowScale must be positive, got %v", opts.WindowScale)
	}
	if opts.SaveSlot == "" {
		return nil, fmt.Errorf("saveSlot cannot be empty")
	}
	return opts, nil
}
