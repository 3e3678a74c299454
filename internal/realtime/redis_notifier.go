package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/rueidis"

	errs "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/logging"
)

// RedisNotifier carries events over a redis pub/sub channel so every
// node sees every change. A single receive loop feeds local
// subscribers; when the connection drops it resubscribes with backoff,
// and callers learn nothing of the gap beyond their next reload.
type RedisNotifier struct {
	client  rueidis.Client
	channel string

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRedisNotifier(client rueidis.Client, channel string) *RedisNotifier {
	ctx, cancel := context.WithCancel(context.Background())
	n := &RedisNotifier{
		client:  client,
		channel: channel,
		subs:    make(map[int]func(Event)),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go n.receiveLoop(ctx)
	return n
}

func (n *RedisNotifier) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	cmd := n.client.B().Publish().Channel(n.channel).Message(string(payload)).Build()
	if err := n.client.Do(ctx, cmd).Error(); err != nil {
		return errs.Transport("publish failed: " + err.Error())
	}
	return nil
}

func (n *RedisNotifier) Subscribe(fn func(Event)) (func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}, nil
}

func (n *RedisNotifier) receiveLoop(ctx context.Context) {
	defer close(n.done)

	backoff := time.Second
	for {
		err := n.client.Receive(ctx, n.client.B().Subscribe().Channel(n.channel).Build(),
			func(msg rueidis.PubSubMessage) {
				var event Event
				if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
					logging.Logger.WithError(err).Warn("realtime: dropping malformed event")
					return
				}
				n.dispatch(event)
				backoff = time.Second
			})

		if ctx.Err() != nil {
			return
		}
		logging.Logger.WithError(err).Warnf("realtime: subscription lost, retrying in %s", backoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (n *RedisNotifier) dispatch(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, fn := range n.subs {
		fn(event)
	}
}

func (n *RedisNotifier) Close() {
	n.cancel()
	<-n.done
}
