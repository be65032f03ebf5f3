package main

import (
	"fmt"
	"time"

	"github.com/decker502/thunderwings/pkg/types"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// tone 一个音效对应的短音
type tone struct {
	freq     float64
	duration time.Duration
	volume   float64 // effects.Volume 的指数，0 为原始音量
}

// toneCues 音效ID到短音的映射
var toneCues = map[string]tone{
	types.SoundBullet:         {freq: 1320, duration: 15 * time.Millisecond, volume: -3},
	types.SoundSuperBullet:    {freq: 1760, duration: 60 * time.Millisecond, volume: -1},
	types.SoundMissile:        {freq: 440, duration: 120 * time.Millisecond, volume: -1},
	types.SoundRocket:         {freq: 330, duration: 150 * time.Millisecond, volume: -1},
	types.SoundExplode:        {freq: 110, duration: 250 * time.Millisecond},
	types.SoundPlayerDown:     {freq: 82, duration: 600 * time.Millisecond},
	types.SoundAllMyPeople:    {freq: 990, duration: 200 * time.Millisecond},
	types.SoundGiftDisappear1: {freq: 660, duration: 80 * time.Millisecond, volume: -2},
	types.SoundGiftDisappear2: {freq: 550, duration: 80 * time.Millisecond, volume: -2},
	types.EnemyDownSound(1):   {freq: 220, duration: 80 * time.Millisecond, volume: -2},
	types.EnemyDownSound(2):   {freq: 180, duration: 120 * time.Millisecond, volume: -1},
	types.EnemyDownSound(3):   {freq: 90, duration: 500 * time.Millisecond},
}

// toneCue 查找音效对应的短音
func toneCue(soundID string) (tone, bool) {
	t, ok := toneCues[soundID]
	return t, ok
}

// tonePlayer 用合成的正弦短音代替音效文件，实现 systems.SoundPlayer
type tonePlayer struct {
	mixer *beep.Mixer
}

// newTonePlayer 初始化扬声器
func newTonePlayer() (*tonePlayer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	p := &tonePlayer{mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

// PlaySound 播放短音，未知的音效ID返回 false
func (p *tonePlayer) PlaySound(soundID string) bool {
	cue, ok := toneCue(soundID)
	if !ok {
		return false
	}
	sine, err := generators.SineTone(sampleRate, cue.freq)
	if err != nil {
		return false
	}
	streamer := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(cue.duration), sine),
		Base:     2,
		Volume:   cue.volume,
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// Close 停止全部声音
func (p *tonePlayer) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}
