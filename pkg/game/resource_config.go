package game

import (
	"path"
	"path/filepath"
)

// DefaultResourceConfigPath 内嵌资源清单路径
const DefaultResourceConfigPath = "data/resources.yaml"

// ResourceConfig represents the resource manifest loaded from YAML.
// It defines the structure of data/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    music: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"` // Overridden by the assetsDir runtime option when set
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup is a collection of resources loaded together.
// The menu group is loaded before the main menu is shown, the battle group before the first battle.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"` // One-shot sound effects
	Music  []SoundResource `yaml:"music"`  // Looping background tracks
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource represents a single image definition.
//
// Optional images may be missing on disk. Death animations are probed frame by frame
// and end at the first missing frame, so their frames are declared optional.
type ImageResource struct {
	ID       string `yaml:"id"`
	Path     string `yaml:"path"`
	Optional bool   `yaml:"optional,omitempty"`
}

// SoundResource represents a single audio definition (.wav, .ogg or .mp3).
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// FontResource represents a single TrueType/OpenType font definition.
type FontResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// buildFullPath joins the base path and a resource's relative path.
// Images without an extension default to .png, audio to .wav.
func buildFullPath(basePath, relativePath, defaultExt string) string {
	full := relativePath
	if basePath != "" {
		full = filepath.Join(basePath, filepath.FromSlash(relativePath))
	}
	if defaultExt != "" && path.Ext(relativePath) == "" {
		full += defaultExt
	}
	return full
}
