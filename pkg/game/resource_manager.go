package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/thunderwings/pkg/embedded"
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrAssetLoad 资源加载失败（启动阶段视为致命错误）
var ErrAssetLoad = errors.New("asset load failed")

// ResourceManager is responsible for centralized management of game resources.
// It resolves resource IDs through the YAML manifest and caches images, audio players
// and font faces so every file is decoded only once.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The caches are plain maps, and the game loop
// is single-threaded.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, "assets")
//	if err := rm.LoadResourceConfig(DefaultResourceConfigPath); err != nil {
//	    return err
//	}
//	if err := rm.LoadResourceGroup("battle"); err != nil {
//	    return err
//	}
//	img := rm.Image("me1")
type ResourceManager struct {
	audioContext *audio.Context
	assetsDir    string // Overrides the manifest base_path when non-empty

	imageCache    map[string]*ebiten.Image // full path -> image
	missingImages map[string]bool          // full path -> load failed, not retried
	audioCache    map[string]*audio.Player // full path -> player
	fontSources   map[string]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace

	config     *ResourceConfig
	imagePaths map[string]string // image ID -> full path
	soundPaths map[string]string // sound ID -> full path
	musicPaths map[string]string // music ID -> full path
	fontPaths  map[string]string // font ID -> full path
	optional   map[string]bool   // image IDs allowed to be missing

	log zerolog.Logger
}

// NewResourceManager creates a ResourceManager.
//
// Parameters:
//   - audioContext: The global audio context; may be nil when only images are needed.
//   - assetsDir: Asset root directory; empty means the manifest base_path.
func NewResourceManager(audioContext *audio.Context, assetsDir string) *ResourceManager {
	return &ResourceManager{
		audioContext:  audioContext,
		assetsDir:     assetsDir,
		imageCache:    make(map[string]*ebiten.Image),
		missingImages: make(map[string]bool),
		audioCache:    make(map[string]*audio.Player),
		fontSources:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
		imagePaths:    make(map[string]string),
		soundPaths:    make(map[string]string),
		musicPaths:    make(map[string]string),
		fontPaths:     make(map[string]string),
		optional:      make(map[string]bool),
		log:           logger.For("resources"),
	}
}

// LoadResourceConfig reads the resource manifest.
// Files present in the embedded data are read from there, everything else from disk.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.Load(configPath)
	if err != nil {
		return fmt.Errorf("%w: failed to read resource config %s: %v", ErrAssetLoad, configPath, err)
	}
	return rm.ParseResourceConfig(data)
}

// ParseResourceConfig parses manifest YAML and rebuilds the ID lookup tables.
func (rm *ResourceManager) ParseResourceConfig(data []byte) error {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("%w: failed to parse resource config: %v", ErrAssetLoad, err)
	}
	rm.config = &config
	rm.buildResourceMap()
	return nil
}

// buildResourceMap constructs the ID -> full path tables.
// Images, sounds, music and fonts live in separate namespaces, so "background" can name
// both the menu backdrop and the menu music.
func (rm *ResourceManager) buildResourceMap() {
	base := rm.config.BasePath
	if rm.assetsDir != "" {
		base = rm.assetsDir
	}

	rm.imagePaths = make(map[string]string)
	rm.soundPaths = make(map[string]string)
	rm.musicPaths = make(map[string]string)
	rm.fontPaths = make(map[string]string)
	rm.optional = make(map[string]bool)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			rm.imagePaths[img.ID] = buildFullPath(base, img.Path, ".png")
			if img.Optional {
				rm.optional[img.ID] = true
			}
		}
		for _, snd := range group.Sounds {
			rm.soundPaths[snd.ID] = buildFullPath(base, snd.Path, ".wav")
		}
		for _, m := range group.Music {
			rm.musicPaths[m.ID] = buildFullPath(base, m.Path, ".wav")
		}
		for _, f := range group.Fonts {
			rm.fontPaths[f.ID] = buildFullPath(base, f.Path, "")
		}
	}
}

// LoadImage loads an image file and caches it by path.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[path]; exists {
		return cached, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID loads an image through its manifest ID.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	filePath, exists := rm.imagePaths[resourceID]
	if !exists {
		return nil, fmt.Errorf("image resource ID not found: %s", resourceID)
	}
	return rm.LoadImage(filePath)
}

// Image returns the image for an ID, loading it on first use.
// Missing or undecodable images return nil and are not retried.
func (rm *ResourceManager) Image(resourceID string) *ebiten.Image {
	filePath, exists := rm.imagePaths[resourceID]
	if !exists || rm.missingImages[filePath] {
		return nil
	}
	img, err := rm.LoadImage(filePath)
	if err != nil {
		rm.missingImages[filePath] = true
		if !rm.optional[resourceID] {
			rm.log.Warn().Err(err).Str("id", resourceID).Msg("Image unavailable")
		}
		return nil
	}
	return img
}

// HasImage reports whether an image ID resolves to a loadable image.
// Death animations use it to find their last frame.
func (rm *ResourceManager) HasImage(resourceID string) bool {
	return rm.Image(resourceID) != nil
}

// audioStream is implemented by the mp3, vorbis and wav decoders.
type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAudio reads an audio file into memory and decodes it by extension.
// Supported formats: .wav, .ogg, .mp3.
func decodeAudio(path string) (audioStream, error) {
	audioData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(audioData)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return stream, nil
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .ogg, .mp3)", ext)
	}
}

// LoadAudio loads a looping background track and caches its player by path.
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	return rm.loadPlayer(path, true)
}

// LoadSoundEffect loads a one-shot sound effect and caches its player by path.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	return rm.loadPlayer(path, false)
}

func (rm *ResourceManager) loadPlayer(path string, loop bool) (*audio.Player, error) {
	if cached, exists := rm.audioCache[path]; exists {
		return cached, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context is not available")
	}

	stream, err := decodeAudio(path)
	if err != nil {
		return nil, err
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, stream.Length())
	}
	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// SoundPath resolves a sound effect ID.
func (rm *ResourceManager) SoundPath(soundID string) (string, bool) {
	p, ok := rm.soundPaths[soundID]
	return p, ok
}

// MusicPath resolves a background track ID.
func (rm *ResourceManager) MusicPath(musicID string) (string, bool) {
	p, ok := rm.musicPaths[musicID]
	return p, ok
}

// LoadFont loads a TrueType/OpenType font and returns a face of the given size.
// Faces are cached by path and size; the parsed source is shared between sizes.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cached, exists := rm.fontFaceCache[cacheKey]; exists {
		return cached, nil
	}

	source, exists := rm.fontSources[path]
	if !exists {
		fontData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
		}
		rm.fontSources[path] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// Font returns a face for a font ID, or nil if the font is unknown or failed to load.
func (rm *ResourceManager) Font(fontID string, size float64) *text.GoTextFace {
	path, exists := rm.fontPaths[fontID]
	if !exists {
		return nil
	}
	face, err := rm.LoadFont(path, size)
	if err != nil {
		rm.log.Warn().Err(err).Str("id", fontID).Msg("Font unavailable")
		return nil
	}
	return face
}

// LoadResourceGroup loads every resource of a manifest group.
//
// Optional images that fail to load are skipped. Any other failure is returned
// wrapped in ErrAssetLoad and is fatal at startup.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("%w: resource config not loaded", ErrAssetLoad)
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("%w: resource group not found: %s", ErrAssetLoad, groupName)
	}

	loaded := 0
	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			if img.Optional {
				rm.missingImages[rm.imagePaths[img.ID]] = true
				continue
			}
			return fmt.Errorf("%w: image %s in group %s: %v", ErrAssetLoad, img.ID, groupName, err)
		}
		loaded++
	}

	if rm.audioContext != nil {
		for _, snd := range group.Sounds {
			if _, err := rm.LoadSoundEffect(rm.soundPaths[snd.ID]); err != nil {
				return fmt.Errorf("%w: sound %s in group %s: %v", ErrAssetLoad, snd.ID, groupName, err)
			}
			loaded++
		}
		for _, m := range group.Music {
			if _, err := rm.LoadAudio(rm.musicPaths[m.ID]); err != nil {
				return fmt.Errorf("%w: music %s in group %s: %v", ErrAssetLoad, m.ID, groupName, err)
			}
			loaded++
		}
	}

	// Fonts need a size; only check that they parse.
	for _, f := range group.Fonts {
		if _, err := rm.LoadFont(rm.fontPaths[f.ID], 16); err != nil {
			return fmt.Errorf("%w: font %s in group %s: %v", ErrAssetLoad, f.ID, groupName, err)
		}
		loaded++
	}

	rm.log.Info().Str("group", groupName).Int("count", loaded).Msg("Resource group loaded")
	return nil
}
