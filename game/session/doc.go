// Package session keeps the interactive matches hosted by the server.
//
// Each session owns one match.Match. Seats are either "human", backed by a
// scripted strategy the service feeds from API calls, or the name of an
// automated strategy. Sessions live in memory only and are keyed by short
// case-insensitive IDs; an empty ID gets a random 4-character one.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", "simple", engine.SimpleRuleset(), []string{"human", "greedy"}, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
//	// Drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
//
// The manager is safe for concurrent use. The matches it hands out are not;
// the game service serialises access to them.
package session
