// Package websocket pushes live match updates to spectators.
//
// A central Hub tracks the connections of every session. Each connection has
// a read goroutine, which only watches for disconnects, and a write goroutine
// that drains its send buffer and keeps the connection alive with pings.
// Registration, removal and broadcasts are all handled on the goroutine
// running Hub.Run, so no locking is needed around the session table.
//
// Message Protocol:
//
// Clients subscribe with the session ID in the query string
// (/ws?sessionId=ab12). Outgoing messages are JSON:
//   - {"session_id": "ab12", "event": "state_update", "state": {...}} after a state change
//   - {"session_id": "ab12", "event": "action", "data": {...}} for each action played
//
// Incoming frames are ignored.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		id := r.URL.Query().Get("sessionId")
//		view, _ := svc.GetGameState(r.Context(), id)
//		hub.ServeWS(w, r, id, view)
//	})
//
//	hub.BroadcastToSession(id, view)
//
// A client whose send buffer fills up is disconnected rather than allowed to
// stall the hub.
package websocket
