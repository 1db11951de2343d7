package app

import (
	"sync"
	"time"

	"github.com/jsamuelsen11/storefront-shops/internal/app/fetcher"
)

// mountedView is a fetcher kept mounted across the requests of one page.
type mountedView struct {
	id       string
	fetcher  *fetcher.ShopsFetcher
	lastUsed time.Time
}

// viewPool holds mounted views by ID. Views idle for longer than ttl are
// unmounted on the next access; when the pool is full the least recently
// used view is unmounted to make room.
type viewPool struct {
	ttl time.Duration
	max int
	now func() time.Time

	mu    sync.Mutex
	views map[string]*mountedView
}

func newViewPool(ttl time.Duration, maxViews int) *viewPool {
	return &viewPool{
		ttl:   ttl,
		max:   maxViews,
		now:   time.Now,
		views: make(map[string]*mountedView),
	}
}

// get returns the mounted view id, marking it used, or nil.
func (p *viewPool) get(id string) *mountedView {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sweepLocked()
	v, ok := p.views[id]
	if !ok {
		return nil
	}
	v.lastUsed = p.now()
	return v
}

// add stores v as just used.
func (p *viewPool) add(v *mountedView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sweepLocked()
	for len(p.views) >= p.max {
		p.evictOldestLocked()
	}
	v.lastUsed = p.now()
	p.views[v.id] = v
}

// touch marks id used if it is still mounted.
func (p *viewPool) touch(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, ok := p.views[id]; ok {
		v.lastUsed = p.now()
	}
}

// closeAll unmounts every view and returns how many there were.
func (p *viewPool) closeAll() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.views)
	for id, v := range p.views {
		v.fetcher.Unmount()
		delete(p.views, id)
	}
	return n
}

func (p *viewPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.views)
}

func (p *viewPool) sweepLocked() {
	now := p.now()
	for id, v := range p.views {
		if now.Sub(v.lastUsed) > p.ttl {
			v.fetcher.Unmount()
			delete(p.views, id)
		}
	}
}

func (p *viewPool) evictOldestLocked() {
	var oldest *mountedView
	for _, v := range p.views {
		if oldest == nil || v.lastUsed.Before(oldest.lastUsed) {
			oldest = v
		}
	}
	if oldest == nil {
		return
	}
	oldest.fetcher.Unmount()
	delete(p.views, oldest.id)
}
