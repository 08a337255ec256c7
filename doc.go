// Package rehoard is a hot-reloading resource cache: request a typed
// resource by key, get back a shared handle, and watch it mutate in place
// whenever its backing file changes on disk — or whenever a resource it
// transitively depends on changes.
//
// The package does not know how to parse any particular file format.
// Client code supplies a store.Loader[T] per value type; rehoard handles
// the cache, the dependency graph between keys, and the filesystem-event
// driven reload engine that keeps every handed-out handle current.
//
// # Basic usage
//
//	s, err := rehoard.New(rehoard.WithRoot("assets"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	h, err := rehoard.Get[Config](context.Background(), s, rehoard.Path("app.toml"), configLoader{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for {
//	    s.Sync(context.Background())
//	    cfg := h.View()
//	    // ... use cfg; it is replaced in place on the next Sync after a write.
//	}
package rehoard
