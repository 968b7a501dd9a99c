package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
	"github.com/weedbox/pokerdealer"
)

// Dispatcher applies an action message to the authoritative state.
type Dispatcher interface {
	Dispatch(msg pokerdealer.Message) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(msg pokerdealer.Message) error

func (f DispatcherFunc) Dispatch(msg pokerdealer.Message) error {
	return f(msg)
}

type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type Broker struct {
	Conn          *nats.Conn
	dispatcher    Dispatcher
	actionSubject string
	stateSubject  string
	sub           *nats.Subscription
}

func Connect(url string, token string) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	opts := []nats.Option{
		nats.Name("pokerdealer"),
	}

	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	return nats.Connect(url, opts...)
}

func NewBroker(nc *nats.Conn, dispatcher Dispatcher, actionSubject string, stateSubject string) *Broker {
	return &Broker{
		Conn:          nc,
		dispatcher:    dispatcher,
		actionSubject: actionSubject,
		stateSubject:  stateSubject,
	}
}

// Subscribe starts consuming action messages.
func (b *Broker) Subscribe() error {
	sub, err := b.Conn.Subscribe(b.actionSubject, b.handleMessage)
	if err != nil {
		return err
	}

	b.sub = sub
	return nil
}

func (b *Broker) Unsubscribe() error {
	if b.sub == nil {
		return nil
	}
	return b.sub.Unsubscribe()
}

func (b *Broker) handleMessage(m *nats.Msg) {
	reply := b.process(m.Data)

	if m.Reply == "" {
		return
	}

	if err := m.Respond(EncodeReply(reply)); err != nil {
		log.Errorf("error responding on %s: %s", m.Reply, err)
	}
}

// process decodes and dispatches one action; the reply describes the outcome.
func (b *Broker) process(data []byte) Reply {
	msg, err := pokerdealer.DecodeMessage(data)
	if err != nil {
		log.WithField("subject", b.actionSubject).Warnf("unable to decode action: %s", err)
		return Reply{Error: err.Error()}
	}

	if err := b.dispatcher.Dispatch(msg); err != nil {
		return Reply{Error: err.Error()}
	}

	return Reply{OK: true}
}

// PublishState is meant to be registered as the engine's state callback.
func (b *Broker) PublishState(state *pokerdealer.GameState) {
	payload, err := EncodeState(state)
	if err != nil {
		log.Errorf("unable to marshal state %d: %s", state.UpdateSerial, err)
		return
	}

	if err := b.Conn.Publish(b.stateSubject, payload); err != nil {
		log.Errorf("error publishing to topic %s: %s", b.stateSubject, err)
	}
}

func EncodeState(state *pokerdealer.GameState) ([]byte, error) {
	return state.Snapshot()
}

func EncodeReply(reply Reply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		log.Errorf("unable to marshal reply: %s", err)
		return []byte(`{"ok":false}`)
	}
	return data
}
