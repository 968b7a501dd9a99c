package blind

import (
	"errors"
)

const (
	// BreakLevel is the Level number carried by break levels
	BreakLevel = -1

	// AnteMode
	AnteMode_None     = "none"      // 不收前注
	AnteMode_BigBlind = "big_blind" // 前注等於大盲
)

var (
	ErrNoIntervals          = errors.New("blind: no intervals")
	ErrInvalidInterval      = errors.New("blind: invalid interval")
	ErrZeroLevelCount       = errors.New("blind: interval has no levels")
	ErrInvalidBreakPolicy   = errors.New("blind: invalid break policy")
	ErrInvalidLevel         = errors.New("blind: small blind must be positive and lower than big blind")
	ErrInvalidLevelDuration = errors.New("blind: level duration must be positive")
	ErrLevelIndexOutOfRange = errors.New("blind: level index out of range")
)

// Interval is a progression rule used to generate consecutive levels.
type Interval struct {
	StartingSmallBlind int64 `json:"starting_small_blind"` // 起始小盲
	Increment          int64 `json:"increment"`            // 每級小盲增量
	LevelDuration      int   `json:"level_duration"`       // 每級持續時間 (Minutes)
	NumberOfLevels     int   `json:"number_of_levels"`     // 級別數量
	OverrideStart      bool  `json:"override_start"`       // 不接續上一個區間，改用 StartingSmallBlind
}

type Level struct {
	Level      int   `json:"level"`       // 盲注等級 (-1 表示中場休息)
	SmallBlind int64 `json:"small_blind"` // 小盲籌碼量
	BigBlind   int64 `json:"big_blind"`   // 大盲籌碼量
	Ante       int64 `json:"ante"`        // 前注籌碼量
	Duration   int   `json:"duration"`    // 等級持續時間 (Minutes)
	IsBreak    bool  `json:"is_break"`    // 是否為中場休息
}

type BreakPolicy struct {
	Enabled   bool `json:"enabled"`   // 是否插入中場休息
	Duration  int  `json:"duration"`  // 休息時間 (Minutes)
	Frequency int  `json:"frequency"` // 每 N 個級別休息一次
}

type Options struct {
	Breaks   BreakPolicy `json:"breaks"`
	AnteMode string      `json:"ante_mode"`
}

func NewBreak(duration int) Level {
	return Level{
		Level:    BreakLevel,
		Duration: duration,
		IsBreak:  true,
	}
}

func (l Level) DurationSeconds() int64 {
	return int64(l.Duration) * 60
}

/*
Generate 依區間產生盲注級別列表
  - 第 i+1 個區間從第 i 個區間的最後小盲 + 增量開始 (除非 OverrideStart)
  - 每 Frequency 個非休息級別之後插入一次休息，最後一級之後不插入
*/
func Generate(intervals []Interval, opts Options) ([]Level, error) {
	if len(intervals) == 0 {
		return nil, ErrNoIntervals
	}

	if opts.Breaks.Enabled && opts.Breaks.Frequency > 0 && opts.Breaks.Duration <= 0 {
		return nil, ErrInvalidBreakPolicy
	}

	total := 0
	for _, interval := range intervals {
		if err := validateInterval(interval); err != nil {
			return nil, err
		}
		total += interval.NumberOfLevels
	}

	levels := make([]Level, 0, total)
	nextSmallBlind := int64(0)
	generated := 0
	for idx, interval := range intervals {
		sb := nextSmallBlind
		if idx == 0 || interval.OverrideStart {
			sb = interval.StartingSmallBlind
		}

		for i := 0; i < interval.NumberOfLevels; i++ {
			generated++
			levels = append(levels, Level{
				SmallBlind: sb,
				BigBlind:   sb * 2,
				Ante:       anteFor(opts.AnteMode, sb*2),
				Duration:   interval.LevelDuration,
			})

			if generated < total && isBreakDue(opts.Breaks, generated) {
				levels = append(levels, NewBreak(opts.Breaks.Duration))
			}

			if i < interval.NumberOfLevels-1 {
				sb += interval.Increment
			}
		}

		nextSmallBlind = sb + interval.Increment
	}

	return renumber(levels), nil
}

// Validate reports the first malformed level.
func Validate(levels []Level) error {
	for _, l := range levels {
		if err := validateLevel(l); err != nil {
			return err
		}
	}
	return nil
}

func InsertLevel(levels []Level, idx int, level Level) ([]Level, error) {
	if idx < 0 || idx > len(levels) {
		return levels, ErrLevelIndexOutOfRange
	}

	if err := validateLevel(level); err != nil {
		return levels, err
	}

	result := make([]Level, 0, len(levels)+1)
	result = append(result, levels[:idx]...)
	result = append(result, level)
	result = append(result, levels[idx:]...)
	return renumber(result), nil
}

func InsertBreak(levels []Level, idx int, duration int) ([]Level, error) {
	return InsertLevel(levels, idx, NewBreak(duration))
}

func RemoveLevel(levels []Level, idx int) ([]Level, error) {
	if idx < 0 || idx >= len(levels) {
		return levels, ErrLevelIndexOutOfRange
	}

	result := make([]Level, 0, len(levels)-1)
	result = append(result, levels[:idx]...)
	result = append(result, levels[idx+1:]...)
	return renumber(result), nil
}

/*
UpdateLevel 手動修改某一級
  - 不會依小盲重新推算大盲，只檢查 SB < BB
*/
func UpdateLevel(levels []Level, idx int, level Level) ([]Level, error) {
	if idx < 0 || idx >= len(levels) {
		return levels, ErrLevelIndexOutOfRange
	}

	if err := validateLevel(level); err != nil {
		return levels, err
	}

	result := make([]Level, len(levels))
	copy(result, levels)
	result[idx] = level
	return renumber(result), nil
}

func validateInterval(interval Interval) error {
	if interval.NumberOfLevels <= 0 {
		return ErrZeroLevelCount
	}

	if interval.StartingSmallBlind <= 0 || interval.Increment < 0 || interval.LevelDuration <= 0 {
		return ErrInvalidInterval
	}

	return nil
}

func validateLevel(l Level) error {
	if l.Duration <= 0 {
		return ErrInvalidLevelDuration
	}

	if l.IsBreak {
		return nil
	}

	if l.SmallBlind <= 0 || l.SmallBlind >= l.BigBlind || l.Ante < 0 {
		return ErrInvalidLevel
	}

	return nil
}

func isBreakDue(policy BreakPolicy, nonBreakCount int) bool {
	if !policy.Enabled || policy.Frequency <= 0 {
		return false
	}
	return nonBreakCount%policy.Frequency == 0
}

func anteFor(mode string, bigBlind int64) int64 {
	if mode == AnteMode_BigBlind {
		return bigBlind
	}
	return 0
}

func renumber(levels []Level) []Level {
	number := 0
	for i := range levels {
		if levels[i].IsBreak {
			levels[i].Level = BreakLevel
			levels[i].SmallBlind = 0
			levels[i].BigBlind = 0
			levels[i].Ante = 0
			continue
		}
		number++
		levels[i].Level = number
	}
	return levels
}
