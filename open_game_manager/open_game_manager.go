package open_game_manager

import (
	"github.com/sirupsen/logrus"
	"github.com/weedbox/syncsaga"
)

func NewOpenGameManager(options OpenGameOption) OpenGameManager {
	m := &openGameManager{
		onOpenGameReady: options.OnOpenGameReady,
		rg: syncsaga.NewReadyGroup(syncsaga.WithTimeout(options.Timeout, func(rg *syncsaga.ReadyGroup) {
			// Auto Ready By Default
			for seat, isReady := range rg.GetParticipantStates() {
				if !isReady {
					rg.Ready(seat)
				}
			}
		})),
	}
	m.state = &OpenGameState{
		TableID:      options.TableID,
		Timeout:      options.Timeout,
		HandCount:    0,
		Participants: make(map[string]*OpenGameParticipant),
	}

	return m
}

func (m *openGameManager) Ready(participantID string) error {
	return m.readyGroupReady(participantID)
}

/*
Setup 重新設定下一手的參與者並開始等待
  - participants: key 為 player_id, value 為座位編號
*/
func (m *openGameManager) Setup(handCount int, participants map[string]int) error {
	if len(participants) < 2 {
		return ErrNotEnoughParticipants
	}

	m.rg.Stop()
	m.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		m.readyGroupOnCompleted()
	})
	m.readyGroupResetParticipants(handCount)
	for id, seat := range participants {
		m.readyGroupAddParticipant(OpenGameParticipant{
			ID:      id,
			Seat:    seat,
			IsReady: false,
		})
	}

	m.rg.Start()

	logrus.WithFields(logrus.Fields{
		"table_id":     m.state.TableID,
		"hand_count":   handCount,
		"participants": len(participants),
	}).Debug("waiting for participants to be ready")

	return nil
}

func (m *openGameManager) Stop() {
	m.rg.Stop()
}

func (m *openGameManager) GetState() OpenGameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	participants := make(map[string]*OpenGameParticipant, len(m.state.Participants))
	for id, p := range m.state.Participants {
		copied := *p
		participants[id] = &copied
	}

	return OpenGameState{
		TableID:      m.state.TableID,
		Timeout:      m.state.Timeout,
		HandCount:    m.state.HandCount,
		Participants: participants,
	}
}
