package blind

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/weedbox/timebank"
)

const DefaultTickInterval = time.Second

// ClockSnapshot is the fresh view of a tournament's blind level read on every tick.
type ClockSnapshot struct {
	LevelIndex      int   // 現在盲注等級索引值
	LevelStartedAt  int64 // 本級開始時間 (Seconds)
	PausedAt        int64 // 暫停時間 (Seconds)，未暫停為 -1
	DurationSeconds int64 // 本級持續時間 (Seconds)
	Stopped         bool  // 盲注計時已停止
}

func (s ClockSnapshot) IsPaused() bool {
	return s.PausedAt >= 0
}

/*
Remaining 計算本級剩餘時間
  - 每次都由牆鐘時間重新計算，漏掉的 tick 會自動修正
  - 暫停中以 PausedAt 當作現在時間
*/
func (s ClockSnapshot) Remaining(now time.Time) time.Duration {
	current := now.Unix()
	if s.IsPaused() {
		current = s.PausedAt
	}

	elapsed := current - s.LevelStartedAt
	if elapsed < 0 {
		elapsed = 0
	}

	remaining := s.DurationSeconds - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining) * time.Second
}

// ClockReader returns the current snapshot for a tournament, false when it no longer exists.
type ClockReader func(tournamentID string) (ClockSnapshot, bool)

// ClockExpiredFunc is invoked at most once per level.
type ClockExpiredFunc func(tournamentID string, levelIndex int)

type Clock struct {
	mu           sync.Mutex
	tournamentID string
	interval     time.Duration
	read         ClockReader
	onExpired    ClockExpiredFunc
	now          func() time.Time
	tbMu         sync.Mutex // TimeBank 不可並行使用
	tb           *timebank.TimeBank
	running      bool
	generation   int

	// one-shot guard
	guardLevel   int
	guardStarted int64
	fired        bool
}

type ClockOpt func(*Clock)

func WithTickInterval(interval time.Duration) ClockOpt {
	return func(c *Clock) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

func WithNow(now func() time.Time) ClockOpt {
	return func(c *Clock) {
		c.now = now
	}
}

func NewClock(tournamentID string, read ClockReader, onExpired ClockExpiredFunc, opts ...ClockOpt) *Clock {
	c := &Clock{
		tournamentID: tournamentID,
		interval:     DefaultTickInterval,
		read:         read,
		onExpired:    onExpired,
		now:          time.Now,
		tb:           timebank.NewTimeBank(),
		guardLevel:   -1,
		guardStarted: -1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Clock) TournamentID() string {
	return c.tournamentID
}

func (c *Clock) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	c.schedule(generation)
}

func (c *Clock) Stop() {
	c.mu.Lock()
	c.running = false
	c.generation++
	c.mu.Unlock()

	c.tbMu.Lock()
	c.tb.Cancel()
	c.tbMu.Unlock()
}

func (c *Clock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

/*
Tick 讀取最新狀態並判斷是否需要推進盲注
  - 剩餘時間歸零時，同一級只會通知一次
  - 回傳 false 代表本計時器應停止
*/
func (c *Clock) Tick() bool {
	snapshot, ok := c.read(c.tournamentID)
	if !ok || snapshot.Stopped {
		return false
	}

	c.mu.Lock()
	if snapshot.LevelIndex != c.guardLevel || snapshot.LevelStartedAt != c.guardStarted {
		c.guardLevel = snapshot.LevelIndex
		c.guardStarted = snapshot.LevelStartedAt
		c.fired = false
	}

	shouldFire := !c.fired && snapshot.Remaining(c.now()) == 0
	if shouldFire {
		c.fired = true
	}
	c.mu.Unlock()

	if shouldFire {
		logrus.WithFields(logrus.Fields{
			"tournament_id": c.tournamentID,
			"level_index":   snapshot.LevelIndex,
		}).Debug("blind level expired")
		c.onExpired(c.tournamentID, snapshot.LevelIndex)
	}

	return true
}

func (c *Clock) isCurrent(generation int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && c.generation == generation
}

func (c *Clock) schedule(generation int) {
	c.tbMu.Lock()
	defer c.tbMu.Unlock()

	err := c.tb.NewTask(c.interval, func(isCancelled bool) {
		if isCancelled || !c.isCurrent(generation) {
			return
		}

		if !c.Tick() {
			c.mu.Lock()
			if c.generation == generation {
				c.running = false
			}
			c.mu.Unlock()
			return
		}

		if c.isCurrent(generation) {
			go c.schedule(generation)
		}
	})
	if err != nil {
		logrus.WithField("tournament_id", c.tournamentID).Errorf("failed to schedule blind clock tick: %v", err)
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}
}

// ClockManager keeps one clock per started tournament.
type ClockManager struct {
	mu        sync.Mutex
	clocks    map[string]*Clock
	read      ClockReader
	onExpired ClockExpiredFunc
	opts      []ClockOpt
}

func NewClockManager(read ClockReader, onExpired ClockExpiredFunc, opts ...ClockOpt) *ClockManager {
	return &ClockManager{
		clocks:    make(map[string]*Clock),
		read:      read,
		onExpired: onExpired,
		opts:      opts,
	}
}

func (m *ClockManager) Start(tournamentID string) *Clock {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, exist := m.clocks[tournamentID]
	if !exist {
		c = NewClock(tournamentID, m.read, m.onExpired, m.opts...)
		m.clocks[tournamentID] = c
	}
	c.Start()
	return c
}

func (m *ClockManager) Stop(tournamentID string) {
	m.mu.Lock()
	c, exist := m.clocks[tournamentID]
	delete(m.clocks, tournamentID)
	m.mu.Unlock()

	if exist {
		c.Stop()
	}
}

func (m *ClockManager) StopAll() {
	m.mu.Lock()
	clocks := m.clocks
	m.clocks = make(map[string]*Clock)
	m.mu.Unlock()

	for _, c := range clocks {
		c.Stop()
	}
}

func (m *ClockManager) Get(tournamentID string) (*Clock, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, exist := m.clocks[tournamentID]
	return c, exist
}
