package engine

// LevelUpFunc receives the level reached after an AddXP call.
type LevelUpFunc func(newLevel int)

type levelUpSub struct {
	id int
	fn LevelUpFunc
}

// SubscribeLevelUp registers fn and returns a function that removes it.
func (s *Store) SubscribeLevelUp(fn LevelUpFunc) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.addSubLocked(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.removeSubLocked(id)
	}
}

// OnLevelUp sets the single-slot subscriber, replacing the previous one.
// Subscribers added through SubscribeLevelUp are unaffected. nil clears the slot.
func (s *Store) OnLevelUp(fn LevelUpFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slotID != 0 {
		s.removeSubLocked(s.slotID)
		s.slotID = 0
	}
	if fn != nil {
		s.slotID = s.addSubLocked(fn)
	}
}

func (s *Store) addSubLocked(fn LevelUpFunc) int {
	s.nextSubID++
	s.subs = append(s.subs, levelUpSub{id: s.nextSubID, fn: fn})
	return s.nextSubID
}

func (s *Store) removeSubLocked(id int) {
	for i := range s.subs {
		if s.subs[i].id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) levelUpTargetsLocked() []LevelUpFunc {
	out := make([]LevelUpFunc, len(s.subs))
	for i := range s.subs {
		out[i] = s.subs[i].fn
	}
	return out
}
