// Package service is the business logic layer between the transports
// (REST, websocket, MCP) and the match engine.
//
// GameService hosts interactive sessions. Every seat of a session is either
// "human" or an automated strategy. A human acts through Place, Move or Pass;
// the service validates that the seat is due, feeds the decision to the
// seat's scripted strategy and steps the match, then keeps stepping while
// automated seats are due. Sessions made only of automated seats are driven
// with Advance, a bounded number of turns at a time.
//
// SessionManager and ConfigManager are implemented by the session and config
// packages; tests substitute in-memory fakes.
//
// Usage:
//
//	sessions := session.NewManager()
//	configs, _ := config.NewManager("configs")
//	svc := service.NewGameService(sessions, configs, service.WithLogger(logger))
//
//	info, err := svc.CreateSession(ctx, service.CreateSessionRequest{
//		ConfigName: "advanced",
//		Seats:      []string{"human", "lookahead"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pool := info.State.Pools[0]
//	res, err := svc.Place(ctx, info.ID, service.PlaceRequest{
//		Player:    0,
//		TileIndex: pool[0].Index,
//		Position:  hex.Origin,
//	})
//	fmt.Println(res.Message)
//
// The service serialises access to sessions with a single lock; matches are
// not safe for concurrent use on their own.
package service
