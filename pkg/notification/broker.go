package notification

import (
	"sync"
	"time"

	"github.com/gatherly/gatherly/pkg/model"
	"golang.org/x/exp/maps"
)

// Notification is the payload fanned out to subscribed members and returned
// by the activity feed.
// swagger:model
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Meta      string    `json:"meta"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	TypeEvent   = "event"
	TypeMessage = "message"
)

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uint]Subscriber),
		lock:        sync.Mutex{},
	}
}

type Subscriber struct {
	user    model.User
	channel chan Notification
}

// Broker routes live notifications to connected users. A user has at most
// one subscription; subscribing again replaces the previous channel.
type Broker struct {
	subscribers map[uint]Subscriber
	lock        sync.Mutex
}

func (b *Broker) Subscribe(user model.User) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if subscriber, ok := b.subscribers[user.ID]; ok {
		close(subscriber.channel)
	}
	b.subscribers[user.ID] = Subscriber{
		user:    user,
		channel: make(chan Notification, 16),
	}
}

func (b *Broker) Unsubscribe(id uint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if subscriber, ok := b.subscribers[id]; ok {
		close(subscriber.channel)
		delete(b.subscribers, id)
	}
}

func (b *Broker) Subscribers() []model.User {
	b.lock.Lock()
	defer b.lock.Unlock()
	keys := maps.Keys(b.subscribers)
	subscribers := make([]model.User, len(keys))
	for i, key := range keys {
		subscribers[i] = b.subscribers[key].user
	}
	return subscribers
}

// Send delivers a notification to the given user if subscribed. A full
// channel drops the notification rather than blocking the sender.
func (b *Broker) Send(id uint, notification Notification) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	subscriber, ok := b.subscribers[id]
	if !ok {
		return false
	}
	select {
	case subscriber.channel <- notification:
		return true
	default:
		return false
	}
}

// Receive blocks until a notification arrives or the subscription is closed.
func (b *Broker) Receive(id uint) (Notification, bool) {
	b.lock.Lock()
	subscriber, ok := b.subscribers[id]
	b.lock.Unlock()
	if !ok {
		return Notification{}, false
	}
	notification, open := <-subscriber.channel
	return notification, open
}
