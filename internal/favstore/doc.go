// Package favstore holds a user's favorite books on the client side of the
// API, with two persistence modes behind a single interface.
//
// Anonymous sessions keep favorites in a local JSON file. Books favorited
// this way have no server identity, so they are keyed by normalized title.
// Signed-in sessions persist through the favorites API; every mutation is
// confirmed by re-fetching the authoritative list from the server.
//
// Usage:
//
//	store := favstore.New("favorites.json")
//	store.Load(ctx)
//	unsubscribe := store.Subscribe(func(records []favstore.Record) {
//		render(records)
//	})
//	defer unsubscribe()
//
//	// After sign-in:
//	client := favstore.NewClient(serverURL, token)
//	store.SetAuthenticated(ctx, client)
package favstore
