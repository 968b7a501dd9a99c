package pokerdealer

import (
	"errors"

	"github.com/sirupsen/logrus"
)

func (e *Engine) OnStateUpdated(fn func(*GameState)) {
	e.onStateUpdated = fn
}

func (e *Engine) OnErrorUpdated(fn func(Message, error)) {
	e.onErrorUpdated = fn
}

func (e *Engine) OnHandEnded(fn func(HandSummary)) {
	e.onHandEnded = fn
}

func (e *Engine) emitEvent(msg Message, state *GameState) {
	logrus.WithFields(logrus.Fields{
		"action":        msg.Type,
		"sender_id":     msg.SenderID,
		"table_id":      msg.Payload.TableID,
		"tournament_id": msg.Payload.TournamentID,
		"serial":        state.UpdateSerial,
	}).Debug("message handled")

	e.onStateUpdated(state)
}

func (e *Engine) emitErrorEvent(msg Message, err error) {
	fields := logrus.Fields{
		"action":        msg.Type,
		"sender_id":     msg.SenderID,
		"table_id":      msg.Payload.TableID,
		"tournament_id": msg.Payload.TournamentID,
	}

	// expiries racing a manual advance are expected
	if errors.Is(err, ErrStaleBlindLevel) {
		logrus.WithFields(fields).Debug("stale blind level ignored")
		return
	}

	logrus.WithFields(fields).Warnf("message rejected: %v", err)
	e.onErrorUpdated(msg, err)
}

func (e *Engine) emitHandEnded(summary HandSummary) {
	logrus.WithFields(logrus.Fields{
		"table_id":      summary.TableID,
		"tournament_id": summary.TournamentID,
		"hand_number":   summary.HandNumber,
		"actions":       len(summary.Actions),
		"aborted":       summary.Aborted,
	}).Info("hand ended")

	e.onHandEnded(summary)
}
