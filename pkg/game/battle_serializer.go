package game

import (
	"fmt"
	"time"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/entities"
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/decker502/thunderwings/pkg/systems"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// gdata 中战斗存档的对象名，属性名为槽位名
const battleObject = "battle"

// BattleSerializer 战斗状态序列化器
//
// 负责把一局战斗收集为 BattleSaveData、编码为 YAML 并写入 gdata 槽位，
// 以及反向恢复。它不是 ECS 系统，只在保存/读档时被调用。
type BattleSerializer struct {
	store *gdata.Manager // 可为 nil（只能编解码，不能持久化）
	log   zerolog.Logger
}

// NewBattleSerializer 创建战斗序列化器
func NewBattleSerializer(store *gdata.Manager) *BattleSerializer {
	return &BattleSerializer{
		store: store,
		log:   logger.For("serializer"),
	}
}

// Collect 收集战斗状态
// 爆炸中的子弹和坠毁中的敌机记为不可用，恢复时会被跳过
func (s *BattleSerializer) Collect(b *systems.Battle) *BattleSaveData {
	data := NewBattleSaveData()
	data.SessionID = b.SessionID.String()

	state := b.State()
	data.DeltaTime = state.DeltaTimer.ElapsedTime()
	data.GiftTime = state.GiftTimer.ElapsedTime()
	data.SpawnTime = state.SpawnTimer.ElapsedTime()
	data.TimeElapsed = state.TimeElapsed
	data.Killed = state.Killed
	data.BossWaveTriggered = state.BossWaveTriggered

	em := b.EntityManager()
	data.Bullets = s.collectBullets(em)
	data.Enemies = s.collectEnemies(em)
	data.Gifts = s.collectGifts(em)

	if p := b.Player(); p != nil {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, b.PlayerID())
		data.Player = PlayerData{
			X:             pos.X,
			Y:             pos.Y,
			Avail:         p.Available,
			Health:        p.Health,
			Damage:        p.Damage,
			ShotGap:       p.ShotGap,
			RecoverHealth: p.RecoverHealth,
		}
	}
	return data
}

func (s *BattleSerializer) collectBullets(em *ecs.EntityManager) []BulletData {
	bullets := []BulletData{}
	for _, id := range ecs.GetEntitiesWith2[*components.BulletComponent, *components.PositionComponent](em) {
		b, _ := ecs.GetComponent[*components.BulletComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		record := BulletData{
			Type:       b.Variant.String(),
			X:          pos.X,
			Y:          pos.Y,
			Avail:      b.Available && !b.Exploding,
			FromPlayer: b.FromPlayer,
			Damage:     b.Damage,
			DamageRate: b.DamageRate,
			Time:       b.Age.ElapsedTime(),
			Direction:  Vec2Data{X: b.Direction.X, Y: b.Direction.Y},
			Speed:      b.Speed,
			ID:         int(b.Archetype),
			Charming:   b.Charming,
		}
		if b.Variant.IsHoming() {
			record.Tracking = b.Tracking
		}
		bullets = append(bullets, record)
	}
	return bullets
}

func (s *BattleSerializer) collectEnemies(em *ecs.EntityManager) []EnemyData {
	enemies := []EnemyData{}
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		record := EnemyData{
			Level:        e.Level,
			X:            pos.X,
			Y:            pos.Y,
			Avail:        e.Available && !e.Dying,
			Health:       e.Health,
			MaxHealth:    e.MaxHealth,
			KillBonus:    e.KillBonus,
			Speed:        e.Speed,
			BulletSpeed:  e.BulletSpeed,
			ShotGap:      e.ShotGap,
			Damage:       e.Damage,
			Charmed:      e.Charmed,
			BonusTaken:   e.BonusTaken,
			ShotTime:     e.ShotTimer.ElapsedTime(),
			ShootCounter: e.ShootCounter,
			RecoverRate:  e.RecoverRate,
		}
		if osc, ok := ecs.GetComponent[*components.OscillationComponent](em, id); ok {
			record.VerticalAmplitude = osc.Amplitude
			record.VerticalFrequency = osc.Frequency
			record.VerticalCenter = osc.Center
			record.Time = osc.Phase.ElapsedTime()
		}
		enemies = append(enemies, record)
	}
	return enemies
}

func (s *BattleSerializer) collectGifts(em *ecs.EntityManager) []GiftData {
	gifts := []GiftData{}
	for _, id := range ecs.GetEntitiesWith1[*components.GiftComponent](em) {
		g, _ := ecs.GetComponent[*components.GiftComponent](em, id)
		gifts = append(gifts, GiftData{
			Name:                string(g.Kind),
			Avail:               g.Available,
			DamageReduction:     g.DamageReduction,
			AttackSpeedIncrease: g.AttackSpeedIncrease,
			SpeedIncrease:       g.SpeedIncrease,
			Charming:            g.Charming,
			RemainingTime:       g.RemainingTime,
			MaxTime:             g.MaxTime,
			Disappearing:        g.Disappearing,
			DisappearingTime:    g.DisappearTimer.ElapsedTime(),
			Sound1Played:        g.FirstWarningPlayed,
			Sound2Played:        g.SecondWarningPlayed,
		})
	}
	return gifts
}

// Restore 用存档替换战斗的全部状态
//
// 不可用的记录被跳过；无法识别的子弹类型、敌机等级或道具名称记录警告后跳过。
// 同屏敌机计数根据恢复后的敌机重新统计。
func (s *BattleSerializer) Restore(b *systems.Battle, data *BattleSaveData) error {
	if data == nil {
		return fmt.Errorf("save data is nil")
	}
	b.Reset()
	factory := b.Factory()

	state := b.State()
	state.DeltaTimer.SetElapsedTime(data.DeltaTime)
	state.GiftTimer.SetElapsedTime(data.GiftTime)
	state.SpawnTimer.SetElapsedTime(data.SpawnTime)
	state.TimeElapsed = data.TimeElapsed
	state.Killed = data.Killed
	state.BossWaveTriggered = data.BossWaveTriggered

	for _, rec := range data.Bullets {
		s.restoreBullet(factory, rec)
	}
	for _, rec := range data.Enemies {
		s.restoreEnemy(factory, rec)
	}
	b.SetPlayerID(s.restorePlayer(factory, data.Player))
	for _, rec := range data.Gifts {
		s.restoreGift(factory, rec)
	}
	b.RecountEnemies()

	if id, err := uuid.Parse(data.SessionID); err == nil {
		b.SessionID = id
	} else {
		b.SessionID = uuid.New()
	}
	return nil
}

func (s *BattleSerializer) restoreBullet(f *entities.Factory, rec BulletData) {
	if !rec.Avail {
		return
	}
	variant, ok := types.ParseBulletVariant(rec.Type)
	if !ok {
		s.log.Warn().Str("type", rec.Type).Msg("Unrecognized bullet type, record skipped")
		return
	}
	dir := utils.Vec2{X: rec.Direction.X, Y: rec.Direction.Y}
	b := &components.BulletComponent{
		Variant:    variant,
		Archetype:  types.ClampArchetype(rec.ID),
		FromPlayer: rec.FromPlayer,
		Damage:     rec.Damage,
		DamageRate: rec.DamageRate,
		Charming:   rec.Charming,
		Direction:  dir,
		Speed:      rec.Speed,
		Age:        f.RestoredTimer(rec.Time),
		Available:  true,
	}
	if variant.IsHoming() {
		b.Tracking = rec.Tracking
		b.Rotation = entities.BulletRotation(dir)
	}
	f.SpawnBullet(b, utils.Vec2{X: rec.X, Y: rec.Y})
}

func (s *BattleSerializer) restoreEnemy(f *entities.Factory, rec EnemyData) {
	if !rec.Avail {
		return
	}
	lc := f.Balance().Enemies.Level(rec.Level)
	if lc == nil {
		s.log.Warn().Int("level", rec.Level).Msg("Unrecognized enemy level, record skipped")
		return
	}
	e := &components.EnemyComponent{
		Level:        rec.Level,
		Health:       rec.Health,
		MaxHealth:    rec.MaxHealth,
		KillBonus:    rec.KillBonus,
		Speed:        rec.Speed,
		BulletSpeed:  rec.BulletSpeed,
		ShotGap:      rec.ShotGap,
		Damage:       rec.Damage,
		RecoverRate:  rec.RecoverRate,
		Charmed:      rec.Charmed,
		BonusTaken:   rec.BonusTaken,
		ShotTimer:    f.RestoredTimer(rec.ShotTime),
		AnimTimer:    f.NewTimer(),
		ShootCounter: rec.ShootCounter,
		Available:    true,
	}
	var osc *components.OscillationComponent
	if lc.Oscillates() {
		osc = &components.OscillationComponent{
			Amplitude: rec.VerticalAmplitude,
			Frequency: rec.VerticalFrequency,
			Center:    rec.VerticalCenter,
			Phase:     f.RestoredTimer(rec.Time),
		}
	}
	if _, err := f.SpawnEnemy(e, utils.Vec2{X: rec.X, Y: rec.Y}, osc); err != nil {
		s.log.Warn().Err(err).Msg("Failed to restore enemy, record skipped")
	}
}

func (s *BattleSerializer) restorePlayer(f *entities.Factory, rec PlayerData) ecs.EntityID {
	id := f.NewPlayer()
	em := f.EntityManager()
	p, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	pos.X, pos.Y = rec.X, rec.Y
	p.Available = rec.Avail
	p.Health = rec.Health
	p.Damage = rec.Damage
	p.ShotGap = rec.ShotGap
	p.RecoverHealth = rec.RecoverHealth
	return id
}

func (s *BattleSerializer) restoreGift(f *entities.Factory, rec GiftData) {
	if !rec.Avail {
		return
	}
	kind, ok := types.ParseGiftKind(rec.Name)
	if !ok {
		s.log.Warn().Str("name", rec.Name).Msg("Unrecognized gift name, record skipped")
		return
	}
	f.SpawnGift(&components.GiftComponent{
		Kind:                kind,
		DamageReduction:     rec.DamageReduction,
		AttackSpeedIncrease: rec.AttackSpeedIncrease,
		SpeedIncrease:       rec.SpeedIncrease,
		Charming:            rec.Charming,
		RemainingTime:       rec.RemainingTime,
		MaxTime:             rec.MaxTime,
		Disappearing:        rec.Disappearing,
		DisappearTimer:      f.RestoredTimer(rec.DisappearingTime),
		FirstWarningPlayed:  rec.Sound1Played,
		SecondWarningPlayed: rec.Sound2Played,
		Available:           true,
	})
}

// EncodeBattle 将存档编码为 YAML
func EncodeBattle(data *BattleSaveData) ([]byte, error) {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save data: %w", err)
	}
	return raw, nil
}

// DecodeBattle 解析 YAML 存档并检查版本
func DecodeBattle(raw []byte) (*BattleSaveData, error) {
	var data BattleSaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode save data: %w", err)
	}
	if data.Version != BattleSaveVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrIncompatibleSave, data.Version, BattleSaveVersion)
	}
	return &data, nil
}

// Save 保存战斗到指定槽位
func (s *BattleSerializer) Save(b *systems.Battle, slot string) error {
	if s.store == nil {
		return fmt.Errorf("save storage is not available")
	}
	data := s.Collect(b)
	data.SaveTime = time.Now()

	raw, err := EncodeBattle(data)
	if err != nil {
		return err
	}
	if err := s.store.SaveObjectProp(battleObject, slot, raw); err != nil {
		return fmt.Errorf("failed to save battle to slot %s: %w", slot, err)
	}

	s.log.Info().
		Str("slot", slot).
		Str("session", data.SessionID).
		Int("bullets", len(data.Bullets)).
		Int("enemies", len(data.Enemies)).
		Int("gifts", len(data.Gifts)).
		Msg("Battle saved")
	return nil
}

// Load 从指定槽位恢复战斗
//
// 返回：
//   - ErrNoSavedBattle: 槽位不存在
//   - ErrIncompatibleSave: 版本不一致
//   - 其它错误: 读取或解析失败
func (s *BattleSerializer) Load(b *systems.Battle, slot string) error {
	if !s.HasSave(slot) {
		return fmt.Errorf("%w in slot %s", ErrNoSavedBattle, slot)
	}
	raw, err := s.store.LoadObjectProp(battleObject, slot)
	if err != nil {
		return fmt.Errorf("failed to load battle from slot %s: %w", slot, err)
	}
	data, err := DecodeBattle(raw)
	if err != nil {
		return err
	}
	if err := s.Restore(b, data); err != nil {
		return err
	}

	s.log.Info().
		Str("slot", slot).
		Str("session", data.SessionID).
		Float64("timeElapsed", data.TimeElapsed).
		Int("killed", data.Killed).
		Msg("Battle loaded")
	return nil
}

// HasSave 检查槽位是否有存档
func (s *BattleSerializer) HasSave(slot string) bool {
	return s.store != nil && s.store.ObjectPropExists(battleObject, slot)
}
