package bridge

import "sync"

// pendingRequest is the in-memory bookkeeping entry for one in-flight
// request: the caller's one-shot completion slot, freed on every
// terminal path (response, timeout, cancel, disconnect).
type pendingRequest struct {
	id   string
	done chan Response
}

// pendingTable is the Bridge's shared pending-requests map, guarded by
// a mutex with bounded hold times (insertion/removal only).
type pendingTable struct {
	mu   sync.Mutex
	byID map[string]*pendingRequest
}

func newPendingTable() *pendingTable {
	return &pendingTable{byID: make(map[string]*pendingRequest)}
}

// add registers a new pending request and returns its completion slot.
func (t *pendingTable) add(id string) *pendingRequest {
	p := &pendingRequest{id: id, done: make(chan Response, 1)}
	t.mu.Lock()
	t.byID[id] = p
	t.mu.Unlock()
	return p
}

// resolve delivers resp to the pending entry matching resp.ID, if one
// still exists. Returns false for unknown/already-resolved identifiers,
// which callers log and drop.
func (t *pendingTable) resolve(resp Response) bool {
	t.mu.Lock()
	p, ok := t.byID[resp.ID]
	if ok {
		delete(t.byID, resp.ID)
	}
	t.mu.Unlock()

	if !ok {
		return false
	}
	p.done <- resp
	return true
}

// remove frees a pending entry without resolving it (timeout, cancel).
func (t *pendingTable) remove(id string) {
	t.mu.Lock()
	delete(t.byID, id)
	t.mu.Unlock()
}

// drain removes every pending entry and returns them, used when the
// connection drops so every in-flight request can be failed at once.
func (t *pendingTable) drain() []*pendingRequest {
	t.mu.Lock()
	defer t.mu.Unlock()

	all := make([]*pendingRequest, 0, len(t.byID))
	for _, p := range t.byID {
		all = append(all, p)
	}
	t.byID = make(map[string]*pendingRequest)
	return all
}

func (t *pendingTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byID)
}
