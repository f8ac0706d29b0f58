package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Topic identifies one live-updating document or collection.
type Topic string

func DailyLogTopic(userID uint, date string) Topic {
	return Topic(fmt.Sprintf("daily_log:%d:%s", userID, date))
}

func SavedMenusTopic(userID uint) Topic {
	return Topic(fmt.Sprintf("saved_menus:%d", userID))
}

// Subscriber receives snapshot payloads for one topic. C is closed on
// Unsubscribe; a caller owns exactly one Unsubscribe per Subscribe.
type Subscriber struct {
	Topic Topic
	C     chan []byte
}

// RealtimeHub fans document snapshots out to live subscribers. Store
// services publish a fresh snapshot after every successful write, so a
// subscriber sees the same last-writer-wins sequence the database holds.
type RealtimeHub struct {
	mu   sync.RWMutex
	subs map[Topic]map[*Subscriber]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{subs: make(map[Topic]map[*Subscriber]struct{})}
}

func (h *RealtimeHub) Subscribe(topic Topic) *Subscriber {
	sub := &Subscriber{Topic: topic, C: make(chan []byte, 8)}
	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscriber]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *RealtimeHub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if set := h.subs[sub.Topic]; set != nil {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.C)
		}
		if len(set) == 0 {
			delete(h.subs, sub.Topic)
		}
	}
	h.mu.Unlock()
}

// Publish marshals payload and delivers it to every subscriber of the
// topic. Slow consumers are skipped rather than blocking a write path;
// they catch up on the next snapshot.
func (h *RealtimeHub) Publish(topic Topic, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		slog.Error("realtime publish marshal failed", "topic", topic, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[topic] {
		select {
		case sub.C <- msg:
		default:
		}
	}
}
