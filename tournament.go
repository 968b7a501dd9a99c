package pokerdealer

import (
	"github.com/google/uuid"
	"github.com/weedbox/pokerdealer/blind"
)

func handleCreateTournament(r *reduction, payload Payload) error {
	setting := payload.Tournament
	if setting == nil {
		return ErrInvalidPayload
	}

	levels, err := blind.Generate(setting.Intervals, setting.Options)
	if err != nil {
		return err
	}

	id := setting.ID
	if id == "" {
		id = uuid.New().String()
	}

	if _, exist := r.state.Tournaments[id]; exist {
		return ErrTournamentAlreadyExists
	}

	r.state.Tournaments[id] = &Tournament{
		ID:   id,
		Name: setting.Name,
		Structure: BlindStructure{
			Intervals: setting.Intervals,
			Options:   setting.Options,
			Levels:    levels,
		},
		IsStarted:         false,
		CurrentLevelIndex: 0,
		LevelStartedAt:    0,
		PausedAt:          UnsetValue,
		ClockStopped:      false,
	}

	return nil
}

/*
handleUpdateBlindStructure 以新的區間重新產生盲注結構
  - 先前手動修改的級別會被捨棄
  - 目前等級索引值超出範圍時調整到最後一級
*/
func handleUpdateBlindStructure(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if payload.Structure == nil {
		return ErrInvalidPayload
	}

	levels, err := blind.Generate(payload.Structure.Intervals, payload.Structure.Options)
	if err != nil {
		return err
	}

	t.Structure = BlindStructure{
		Intervals: payload.Structure.Intervals,
		Options:   payload.Structure.Options,
		Levels:    levels,
	}

	if t.CurrentLevelIndex >= len(levels) {
		t.CurrentLevelIndex = len(levels) - 1
	}

	return nil
}

func handleEditBlindLevel(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if payload.Level == nil {
		return ErrInvalidPayload
	}

	levels, err := blind.UpdateLevel(t.Structure.Levels, payload.LevelIndex, *payload.Level)
	if err != nil {
		return err
	}

	t.Structure.Levels = levels
	return nil
}

// handleInsertBlindLevel inserts before LevelIndex; the running level keeps its position in the schedule.
func handleInsertBlindLevel(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if payload.Level == nil {
		return ErrInvalidPayload
	}

	var levels []blind.Level
	if payload.Level.IsBreak {
		levels, err = blind.InsertBreak(t.Structure.Levels, payload.LevelIndex, payload.Level.Duration)
	} else {
		levels, err = blind.InsertLevel(t.Structure.Levels, payload.LevelIndex, *payload.Level)
	}
	if err != nil {
		return err
	}

	t.Structure.Levels = levels
	if t.IsStarted && payload.LevelIndex <= t.CurrentLevelIndex {
		t.CurrentLevelIndex++
	}

	return nil
}

func handleRemoveBlindLevel(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if len(t.Structure.Levels) <= 1 {
		return ErrBlindLevelInUse
	}

	if t.IsStarted && payload.LevelIndex == t.CurrentLevelIndex {
		return ErrBlindLevelInUse
	}

	levels, err := blind.RemoveLevel(t.Structure.Levels, payload.LevelIndex)
	if err != nil {
		return err
	}

	t.Structure.Levels = levels
	if payload.LevelIndex < t.CurrentLevelIndex {
		t.CurrentLevelIndex--
	}
	if t.CurrentLevelIndex >= len(levels) {
		t.CurrentLevelIndex = len(levels) - 1
	}

	return nil
}

func handleStartTournament(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if t.IsStarted {
		return ErrTournamentStarted
	}

	if err := blind.Validate(t.Structure.Levels); err != nil {
		return err
	}

	if _, ok := t.CurrentLevel(); !ok {
		return blind.ErrLevelIndexOutOfRange
	}

	t.IsStarted = true
	t.LevelStartedAt = r.now.Unix()
	t.PausedAt = UnsetValue
	t.ClockStopped = false

	r.emit(Effect{
		Kind:         EffectKind_StartBlindClock,
		TournamentID: t.ID,
	})

	return nil
}

func handleStopTournament(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if !t.IsStarted {
		return ErrTournamentNotStarted
	}

	t.IsStarted = false

	r.emit(Effect{
		Kind:         EffectKind_StopBlindClock,
		TournamentID: t.ID,
	})

	return nil
}

func handlePauseBlindClock(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if !t.IsStarted {
		return ErrTournamentNotStarted
	}

	if t.IsPaused() {
		return ErrClockPaused
	}

	t.PausedAt = r.now.Unix()
	return nil
}

// handleResumeBlindClock shifts the level start forward by the paused duration.
func handleResumeBlindClock(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if !t.IsStarted {
		return ErrTournamentNotStarted
	}

	if !t.IsPaused() {
		return ErrClockNotPaused
	}

	paused := r.now.Unix() - t.PausedAt
	if paused > 0 {
		t.LevelStartedAt += paused
	}
	t.PausedAt = UnsetValue

	return nil
}

func handleAdvanceBlindLevel(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	r.advanceLevel(t)
	return nil
}

// handleAutoAdvanceBlindLevel ignores expiries raised for a level that is no longer current.
func handleAutoAdvanceBlindLevel(r *reduction, payload Payload) error {
	t, err := r.tournament(payload.TournamentID)
	if err != nil {
		return err
	}

	if !t.IsStarted || t.ClockStopped || payload.LevelIndex != t.CurrentLevelIndex {
		return ErrStaleBlindLevel
	}

	r.advanceLevel(t)
	return nil
}

/*
advanceLevel 進入下一個盲注等級
  - 已是最後一級時不前進，停止盲注計時
  - 暫停中前進時新的一級同樣維持暫停
*/
func (r *reduction) advanceLevel(t *Tournament) {
	if t.IsFinalLevel() {
		if t.IsStarted && !t.ClockStopped {
			t.ClockStopped = true
			r.emit(Effect{
				Kind:         EffectKind_StopBlindClock,
				TournamentID: t.ID,
			})
		}
		return
	}

	t.CurrentLevelIndex++
	t.LevelStartedAt = r.now.Unix()
	if t.IsPaused() {
		t.PausedAt = t.LevelStartedAt
	}

	if t.IsStarted && t.ClockStopped {
		t.ClockStopped = false
		r.emit(Effect{
			Kind:         EffectKind_StartBlindClock,
			TournamentID: t.ID,
		})
	}
}
