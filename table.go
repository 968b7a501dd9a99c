package pokerdealer

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/pokerdealer/blind"
	"github.com/weedbox/pokerdealer/pot"
)

// GameState is the single authoritative aggregate; entities are addressed by id.
type GameState struct {
	Tournaments  map[string]*Tournament `json:"tournaments"`
	Tables       map[string]*TableState `json:"tables"`
	Players      map[string]*Player     `json:"players"`
	UpdateAt     int64                  `json:"update_at"`     // 更新時間 (Seconds)
	UpdateSerial int64                  `json:"update_serial"` // 更新序列號 (數字越大越晚發生)
}

type Tournament struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Structure         BlindStructure `json:"structure"`           // 盲注結構
	IsStarted         bool           `json:"is_started"`          // 是否已開賽
	CurrentLevelIndex int            `json:"current_level_index"` // 現在盲注等級索引值
	LevelStartedAt    int64          `json:"level_started_at"`    // 本級開始時間 (Seconds)
	PausedAt          int64          `json:"paused_at"`           // 暫停時間 (Seconds)，未暫停為 -1
	ClockStopped      bool           `json:"clock_stopped"`       // 已到最後一級，盲注計時停止
}

type BlindStructure struct {
	Intervals []blind.Interval `json:"intervals"`
	Options   blind.Options    `json:"options"`
	Levels    []blind.Level    `json:"levels"`
}

type HandBlinds struct {
	SmallBlind int64 `json:"small_blind"`
	BigBlind   int64 `json:"big_blind"`
	Ante       int64 `json:"ante"`
}

type TableState struct {
	ID                string            `json:"id"`
	TournamentID      string            `json:"tournament_id"`
	Name              string            `json:"name"`
	MaxSeats          int               `json:"max_seats"`            // 座位數
	AutoStartNextHand bool              `json:"auto_start_next_hand"` // 玩家準備後自動開下一手
	IsHandInProgress  bool              `json:"is_hand_in_progress"`  // 本手進行中
	HandCount         int               `json:"hand_count"`           // 已開局手數
	Round             Round             `json:"round"`                // 當前下注回合
	CurrentBet        int64             `json:"current_bet"`          // 本回合最高下注
	MinRaise          int64             `json:"min_raise"`            // 最小加注增量
	Blinds            HandBlinds        `json:"blinds"`               // 本手盲注
	DealerSeat        int               `json:"dealer_seat"`          // Dealer 座位編號
	CurrentTurnSeat   int               `json:"current_turn_seat"`    // 輪到行動的座位編號
	Pot               int64             `json:"pot"`                  // 尚未發出的底池
	Pots              []pot.Pot         `json:"pots"`                 // 攤牌時計算的主池與邊池
	BlindLevelIndex   int               `json:"blind_level_index"`    // 本手使用的盲注等級索引值
	Distribution      *pot.Distribution `json:"distribution"`         // 分池工作區
	Awards            []pot.Award       `json:"awards"`               // 本手已派發
	BetActions        []BetAction       `json:"bet_actions"`          // 本手下注紀錄
}

type Player struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	TableID      string       `json:"table_id"`
	Seat         int          `json:"seat"`         // 座位編號
	Balance      int64        `json:"balance"`      // 玩家身上籌碼
	CurrentBet   int64        `json:"current_bet"`  // 本回合下注
	Contribution int64        `json:"contribution"` // 本手總投入
	HasActed     bool         `json:"has_acted"`    // 本回合是否已行動
	Status       PlayerStatus `json:"status"`       // 玩家狀態
}

func NewGameState() *GameState {
	return &GameState{
		Tournaments: make(map[string]*Tournament),
		Tables:      make(map[string]*TableState),
		Players:     make(map[string]*Player),
	}
}

func (gs *GameState) RefreshUpdateAt(now time.Time) {
	gs.UpdateAt = now.Unix()
	gs.UpdateSerial++
}

// Clone deep-copies the state through its json form.
func (gs *GameState) Clone() (*GameState, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, err
	}
	return LoadGameState(data)
}

// TablePlayers returns the players seated at a table ordered by seat.
func (gs *GameState) TablePlayers(tableID string) []*Player {
	players := make([]*Player, 0)
	for _, p := range gs.Players {
		if p.TableID == tableID {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })
	return players
}

func (gs *GameState) PlayerAtSeat(tableID string, seat int) *Player {
	for _, p := range gs.Players {
		if p.TableID == tableID && p.Seat == seat {
			return p
		}
	}
	return nil
}

// HandPlayers returns the players taking part in the current hand, ordered by seat.
func (gs *GameState) HandPlayers(tableID string) []*Player {
	return funk.Filter(gs.TablePlayers(tableID), func(p *Player) bool {
		return p.Status != PlayerStatus_SittingOut
	}).([]*Player)
}

func (gs *GameState) TotalChips() int64 {
	total := int64(0)
	for _, p := range gs.Players {
		total += p.Balance
	}
	for _, t := range gs.Tables {
		total += t.Pot
	}
	return total
}

func (t *Tournament) CurrentLevel() (blind.Level, bool) {
	if t.CurrentLevelIndex < 0 || t.CurrentLevelIndex >= len(t.Structure.Levels) {
		return blind.Level{}, false
	}
	return t.Structure.Levels[t.CurrentLevelIndex], true
}

func (t *Tournament) IsPaused() bool {
	return t.PausedAt >= 0
}

func (t *Tournament) IsFinalLevel() bool {
	return t.CurrentLevelIndex >= len(t.Structure.Levels)-1
}

func (t *Tournament) ClockSnapshot() blind.ClockSnapshot {
	snapshot := blind.ClockSnapshot{
		LevelIndex:     t.CurrentLevelIndex,
		LevelStartedAt: t.LevelStartedAt,
		PausedAt:       t.PausedAt,
		Stopped:        !t.IsStarted || t.ClockStopped,
	}
	if level, ok := t.CurrentLevel(); ok {
		snapshot.DurationSeconds = level.DurationSeconds()
	}
	return snapshot
}

func (p *Player) IsInHand() bool {
	return p.Status == PlayerStatus_Active || p.Status == PlayerStatus_AllIn
}
