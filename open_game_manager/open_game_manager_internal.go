package open_game_manager

func (m *openGameManager) readyGroupResetParticipants(handCount int) {
	m.rg.ResetParticipants()

	m.mu.Lock()
	m.state.HandCount = handCount
	m.state.Participants = map[string]*OpenGameParticipant{}
	m.mu.Unlock()
}

func (m *openGameManager) readyGroupAddParticipant(participant OpenGameParticipant) {
	m.mu.Lock()
	m.state.Participants[participant.ID] = &OpenGameParticipant{
		ID:      participant.ID,
		Seat:    participant.Seat,
		IsReady: participant.IsReady,
	}
	m.mu.Unlock()

	m.rg.Add(int64(participant.Seat), participant.IsReady)
}

func (m *openGameManager) readyGroupOnCompleted() {
	m.mu.Lock()
	for participantID := range m.state.Participants {
		m.state.Participants[participantID].IsReady = true
	}
	m.mu.Unlock()

	m.onOpenGameReady(m.GetState())
}

func (m *openGameManager) readyGroupReady(participantID string) error {
	m.mu.Lock()
	participant, exist := m.state.Participants[participantID]
	if !exist {
		m.mu.Unlock()
		return ErrParticipantNotFound
	}
	participant.IsReady = true
	seat := participant.Seat
	m.mu.Unlock()

	m.rg.Ready(int64(seat))
	return nil
}
