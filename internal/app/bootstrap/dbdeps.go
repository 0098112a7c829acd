// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"sync"

	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Store is what every feature reads and writes through. The mongo handles
// are nil when the memory backend is selected.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Store         docstore.Store
	Backend       string

	// cleanup holds stop funcs for background work BuildHandler starts.
	// Shutdown runs them.
	cleanup *cleanup
}

type cleanup struct {
	mu  sync.Mutex
	fns []func()
}

func newCleanup() *cleanup { return &cleanup{} }

// add registers fn. A nil receiver drops it, so deps built without
// ConnectDB still work.
func (c *cleanup) add(fn func()) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fns = append(c.fns, fn)
}

// run calls the registered funcs once, newest first.
func (c *cleanup) run() {
	if c == nil {
		return
	}
	c.mu.Lock()
	fns := c.fns
	c.fns = nil
	c.mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
