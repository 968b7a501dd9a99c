package actor

import (
	"math/rand"
	"sync"
	"time"

	"github.com/weedbox/pokerdealer"
	"github.com/weedbox/timebank"
)

// ActionFunc delivers a bot's wager message to the engine.
type ActionFunc func(msg pokerdealer.Message) error

type WagerActionUpdatedFunc func(tableID string, handCount int, round pokerdealer.Round, action pokerdealer.ActionKind, chips int64)

type ActionProbability struct {
	Action pokerdealer.ActionKind
	Weight float64
}

var (
	actionProbabilities = []ActionProbability{
		{Action: pokerdealer.ActionKind_Check, Weight: 0.1},
		{Action: pokerdealer.ActionKind_Call, Weight: 0.3},
		{Action: pokerdealer.ActionKind_Fold, Weight: 0.15},
		{Action: pokerdealer.ActionKind_AllIn, Weight: 0.05},
		{Action: pokerdealer.ActionKind_Raise, Weight: 0.3},
		{Action: pokerdealer.ActionKind_Bet, Weight: 0.1},
	}
)

type BotRunner struct {
	mu                   sync.Mutex
	playerID             string
	act                  ActionFunc
	isHumanized          bool
	actionTime           int // 最長思考秒數
	lastSerial           int64
	timebank             *timebank.TimeBank
	rand                 *rand.Rand
	onWagerActionUpdated WagerActionUpdatedFunc
}

func NewBotRunner(playerID string, act ActionFunc) *BotRunner {
	return &BotRunner{
		playerID:             playerID,
		act:                  act,
		timebank:             timebank.NewTimeBank(),
		rand:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		onWagerActionUpdated: func(string, int, pokerdealer.Round, pokerdealer.ActionKind, int64) {},
	}
}

func (br *BotRunner) PlayerID() string {
	return br.playerID
}

// Seed makes the bot's choices reproducible.
func (br *BotRunner) Seed(seed int64) {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.rand = rand.New(rand.NewSource(seed))
}

// Humanized delays every decision by up to actionTime seconds.
func (br *BotRunner) Humanized(enabled bool, actionTime int) {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.isHumanized = enabled
	br.actionTime = actionTime
}

func (br *BotRunner) OnWagerActionUpdated(fn WagerActionUpdatedFunc) {
	br.onWagerActionUpdated = fn
}

// Stop cancels a pending humanized decision.
func (br *BotRunner) Stop() {
	br.timebank.Cancel()
}

/*
UpdateState 收到新的狀態時判斷是否需要行動
  - 過期或重複的狀態直接忽略
  - 輪到本玩家時依權重隨機選擇動作
*/
func (br *BotRunner) UpdateState(state *pokerdealer.GameState) error {
	br.mu.Lock()
	if state.UpdateSerial <= br.lastSerial {
		br.mu.Unlock()
		return nil
	}
	br.lastSerial = state.UpdateSerial
	br.mu.Unlock()

	p, exist := state.Players[br.playerID]
	if !exist || p.TableID == "" {
		return nil
	}

	table, exist := state.Tables[p.TableID]
	if !exist {
		return nil
	}

	opts := state.AllowedActions(table.ID, br.playerID)
	if len(opts.Actions) == 0 {
		return nil
	}

	return br.requestMove(*table, opts)
}

func (br *BotRunner) requestMove(table pokerdealer.TableState, opts pokerdealer.WagerOptions) error {
	br.mu.Lock()
	isHumanized := br.isHumanized
	thinkingTime := 0
	if isHumanized && br.actionTime > 0 {
		thinkingTime = br.rand.Intn(br.actionTime)
	}
	br.mu.Unlock()

	if thinkingTime == 0 {
		return br.requestAI(table, opts)
	}

	return br.timebank.NewTask(time.Duration(thinkingTime)*time.Second, func(isCancelled bool) {
		if isCancelled {
			return
		}

		br.requestAI(table, opts)
	})
}

// calcActionProbabilities returns the cumulative weight of each allowed action, in the given order.
func (br *BotRunner) calcActionProbabilities(actions []pokerdealer.ActionKind) []ActionProbability {
	weights := make([]ActionProbability, 0, len(actions))
	totalWeight := 0.0
	for _, action := range actions {
		for _, p := range actionProbabilities {
			if action == p.Action {
				weights = append(weights, p)
				totalWeight += p.Weight
				break
			}
		}
	}

	if totalWeight == 0 {
		return weights
	}

	weightLevel := 0.0
	for idx := range weights {
		weightLevel += weights[idx].Weight / totalWeight
		weights[idx].Weight = weightLevel
	}

	return weights
}

func (br *BotRunner) calcAction(actions []pokerdealer.ActionKind) pokerdealer.ActionKind {
	probabilities := br.calcActionProbabilities(actions)

	br.mu.Lock()
	randomNum := br.rand.Float64()
	br.mu.Unlock()

	for _, p := range probabilities {
		if randomNum < p.Weight {
			return p.Action
		}
	}

	return actions[len(actions)-1]
}

func (br *BotRunner) int63Between(min int64, max int64) int64 {
	if max <= min {
		return min
	}

	br.mu.Lock()
	defer br.mu.Unlock()
	return min + br.rand.Int63n(max-min+1)
}

func (br *BotRunner) requestAI(table pokerdealer.TableState, opts pokerdealer.WagerOptions) error {
	action := opts.Actions[0]
	if len(opts.Actions) > 1 {
		action = br.calcAction(opts.Actions)
	}

	chips := int64(0)
	switch action {
	case pokerdealer.ActionKind_Bet:
		limit := opts.MinBet * 4
		if limit > opts.MaxBet {
			limit = opts.MaxBet
		}
		chips = br.int63Between(opts.MinBet, limit)
	case pokerdealer.ActionKind_Raise:
		chips = br.int63Between(opts.MinRaiseTo, opts.MaxRaiseTo)
	case pokerdealer.ActionKind_Call:
		chips = opts.ToCall
	}

	err := br.act(pokerdealer.NewMessage(action, br.playerID, pokerdealer.Payload{
		TableID:  table.ID,
		PlayerID: br.playerID,
		Amount:   chips,
	}))
	if err != nil {
		return err
	}

	br.onWagerActionUpdated(table.ID, table.HandCount, table.Round, action, chips)
	return nil
}
