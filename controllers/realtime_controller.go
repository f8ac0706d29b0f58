package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RealtimeController bridges store subscriptions onto websockets. Each
// connection holds exactly one hub subscription, torn down when the
// socket closes, so a mounted view never double-subscribes one key.
type RealtimeController struct {
	Logs  *services.DailyLogService
	Menus *services.SavedMenuService
}

func NewRealtimeController(logs *services.DailyLogService, menus *services.SavedMenuService) *RealtimeController {
	return &RealtimeController{Logs: logs, Menus: menus}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// DailyLogWS streams snapshots of one day's log.
func (rc *RealtimeController) DailyLogWS(c *gin.Context) {
	uid := c.GetUint("userID")
	date := c.Param("date")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	// the client renders "loading" until the first real snapshot lands
	loading, _ := json.Marshal(services.LogSnapshot{State: services.SnapshotLoading})
	_ = conn.WriteMessage(websocket.TextMessage, loading)

	snap, sub, err := rc.Logs.Subscribe(uid, date)
	if err != nil {
		_ = conn.Close()
		return
	}

	first, _ := json.Marshal(snap)
	_ = conn.WriteMessage(websocket.TextMessage, first)

	rc.serve(conn, sub, func() { rc.Logs.Unsubscribe(sub) })
}

// SavedMenusWS streams the user's full menu list, newest first.
func (rc *RealtimeController) SavedMenusWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	loading, _ := json.Marshal(services.MenuSnapshot{State: services.SnapshotLoading})
	_ = conn.WriteMessage(websocket.TextMessage, loading)

	snap, sub, err := rc.Menus.Subscribe(uid)
	if err != nil {
		_ = conn.Close()
		return
	}

	first, _ := json.Marshal(snap)
	_ = conn.WriteMessage(websocket.TextMessage, first)

	rc.serve(conn, sub, func() { rc.Menus.Unsubscribe(sub) })
}

func (rc *RealtimeController) serve(conn *websocket.Conn, sub *services.Subscriber, teardown func()) {
	done := make(chan struct{})

	// writer: hub snapshots plus keepalive pings through proxies
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-sub.C:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// read loop ends on client close or error, then unsubscribe
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			close(done)
			teardown()
			_ = conn.Close()
			return
		}
	}
}
