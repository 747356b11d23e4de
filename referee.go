package gesture

// ScopeKey identifies one arbitration scope: a touch id, or an axis id when
// Axis is set. Touch and axis ids live in separate spaces.
type ScopeKey struct {
	ID   int
	Axis bool
}

// gestureScope is the arbitration domain for one touch or axis id.
type gestureScope struct {
	key          ScopeKey
	members      []Handle
	delayedClose bool
}

// Referee arbitrates between the root recognizers of every open scope. A
// recognizer asks to ACCEPT, go PENDING or REJECT and the referee commits,
// blocks or broadcasts accordingly.
//
// Members bound with PriorityParallel take part in no arbitration: they are
// never blocked, never block others and are not rejected when another member
// wins.
type Referee struct {
	e      *Engine
	scopes []*gestureScope
}

func newReferee(e *Engine) *Referee {
	return &Referee{e: e}
}

// Scopes returns the keys of every open scope in creation order.
func (rf *Referee) Scopes() []ScopeKey {
	keys := make([]ScopeKey, len(rf.scopes))
	for i, s := range rf.scopes {
		keys[i] = s.key
	}
	return keys
}

// HasScope reports whether a scope is open for key.
func (rf *Referee) HasScope(key ScopeKey) bool {
	return rf.scope(key) != nil
}

// Members returns the live members of the scope for key.
func (rf *Referee) Members(key ScopeKey) []Recognizer {
	s := rf.scope(key)
	if s == nil {
		return nil
	}
	return rf.members(s)
}

func (rf *Referee) scope(key ScopeKey) *gestureScope {
	for _, s := range rf.scopes {
		if s.key == key {
			return s
		}
	}
	return nil
}

func (rf *Referee) members(s *gestureScope) []Recognizer {
	out := make([]Recognizer, 0, len(s.members))
	for _, h := range s.members {
		if r := rf.e.arena.get(h); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// AddToScope registers roots with the scope for key, creating it if needed.
// A scope awaiting delayed close is reused and the close is cancelled.
func (rf *Referee) AddToScope(key ScopeKey, roots []Handle) {
	s := rf.scope(key)
	if s == nil {
		s = &gestureScope{key: key}
		rf.scopes = append(rf.scopes, s)
	}
	s.delayedClose = false
outer:
	for _, h := range roots {
		r := rf.e.arena.get(h)
		if r == nil {
			continue
		}
		for _, m := range s.members {
			if m == h {
				continue outer
			}
		}
		s.members = append(s.members, h)
		r.base().addScope(key)
	}
}

// scopesOf returns every open scope r belongs to.
func (rf *Referee) scopesOf(r Recognizer) []*gestureScope {
	var out []*gestureScope
	for _, k := range r.base().scopes {
		if s := rf.scope(k); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// blocked reports whether another arbitrating member of any scope r belongs
// to is PENDING.
func (rf *Referee) blocked(r Recognizer) bool {
	if r.base().parallel {
		return false
	}
	for _, s := range rf.scopesOf(r) {
		for _, m := range rf.members(s) {
			if m == r || m.base().parallel {
				continue
			}
			if m.State() == StatePending {
				return true
			}
		}
	}
	return false
}

// Adjudicate applies a root recognizer's disposal request.
func (rf *Referee) Adjudicate(r Recognizer, d GestureDisposal) {
	if r == nil {
		return
	}
	switch d {
	case DisposalAccept:
		rf.accept(r)
	case DisposalPending:
		rf.pending(r)
	case DisposalReject:
		rf.reject(r)
	}
	rf.sweep()
}

func (rf *Referee) accept(r Recognizer) {
	st := r.State()
	if st == StateSucceed || st == StateFail {
		return
	}
	if r.base().parallel {
		acceptRecognizer(r, "accepted")
		return
	}
	if rf.blocked(r) {
		r.base().transition(StateSucceedBlocked, "blocked by pending")
		r.onBlocked(DisposalAccept)
		return
	}
	rf.commitAccept(r)
}

// commitAccept makes r the winner of every scope it belongs to: the other
// undecided arbitrating members are rejected, then r commits to SUCCEED.
func (rf *Referee) commitAccept(r Recognizer) {
	r.base().transition(StateSucceed, "accepted")
	for _, s := range rf.scopesOf(r) {
		for _, m := range rf.members(s) {
			if m == r || m.base().parallel {
				continue
			}
			if st := m.State(); st == StateSucceed || st == StateFail {
				continue
			}
			rejectRecognizer(m, "lost to "+describe(r))
		}
	}
	r.onAccepted()
}

func (rf *Referee) pending(r Recognizer) {
	st := r.State()
	if st == StatePending || st.Terminal() {
		return
	}
	if rf.blocked(r) {
		r.base().transition(StatePendingBlocked, "blocked by pending")
		r.onBlocked(DisposalPending)
		return
	}
	r.base().transition(StatePending, "pending")
	r.onPending()
}

func (rf *Referee) reject(r Recognizer) {
	prior := r.State()
	if prior == StateFail {
		return
	}
	rejectRecognizer(r, "rejected")
	if prior == StatePending {
		rf.promoteBlocked()
	}
}

// promoteBlocked re-examines every blocked member once some PENDING member
// has resolved. A PENDING_BLOCKED member goes back through the PENDING path;
// a SUCCEED_BLOCKED member commits as an accept.
func (rf *Referee) promoteBlocked() {
	for progress := true; progress; {
		progress = false
		for _, s := range append([]*gestureScope(nil), rf.scopes...) {
			for _, m := range rf.members(s) {
				st := m.State()
				if st != StatePendingBlocked && st != StateSucceedBlocked {
					continue
				}
				if rf.blocked(m) {
					continue
				}
				if st == StateSucceedBlocked {
					rf.commitAccept(m)
				} else {
					rf.pending(m)
				}
				progress = true
			}
		}
	}
}

// CleanScope marks the scope for key closable; it closes as soon as no
// member is PENDING.
func (rf *Referee) CleanScope(key ScopeKey) {
	s := rf.scope(key)
	if s == nil {
		return
	}
	s.delayedClose = true
	rf.sweep()
}

// ForceCloseScope closes the scope for key regardless of pending members.
// Members that were blocking others are gone afterwards, so blocked members
// of the remaining scopes are re-examined.
func (rf *Referee) ForceCloseScope(key ScopeKey) {
	s := rf.scope(key)
	if s == nil {
		return
	}
	for _, m := range rf.members(s) {
		walk(m, func(r Recognizer) {
			if !r.State().Terminal() && r.State() != StateReady {
				r.cancel("scope cancelled")
			}
		})
	}
	rf.close(s)
	rf.promoteBlocked()
	rf.sweep()
}

// sweep closes every scope marked for delayed close that has no PENDING
// member left.
func (rf *Referee) sweep() {
	for {
		var ready *gestureScope
		for _, s := range rf.scopes {
			if s.delayedClose && !rf.hasPending(s) {
				ready = s
				break
			}
		}
		if ready == nil {
			return
		}
		rf.close(ready)
	}
}

func (rf *Referee) hasPending(s *gestureScope) bool {
	for _, m := range rf.members(s) {
		if anyPending(m) {
			return true
		}
	}
	return false
}

func (rf *Referee) close(s *gestureScope) {
	for i, o := range rf.scopes {
		if o == s {
			rf.scopes = append(rf.scopes[:i], rf.scopes[i+1:]...)
			break
		}
	}
	for _, m := range rf.members(s) {
		finishReferee(m, s.key)
	}
	rf.e.debugf("scope %v closed", s.key)
}

// dropMember removes h from every scope; used when a recognizer is
// released while sessions are open.
func (rf *Referee) dropMember(h Handle) {
	for _, s := range rf.scopes {
		for i, m := range s.members {
			if m == h {
				s.members = append(s.members[:i], s.members[i+1:]...)
				break
			}
		}
	}
}
