// Package session holds the in-memory session state for the console: the
// current token, the user identity, and the flags derived from them. Writes
// are fanned out synchronously to subscribers so UI bindings observe every
// change before the next paint.
package session

import "sync"

// RouteModeStatic is the route mode under which the static super role grants
// elevated capability.
const RouteModeStatic = "static"

// Config supplies the settings the privileged-role derivation depends on.
type Config interface {
	GetAuthRouteMode() string
	GetStaticSuperRole() string
}

// UserInfo is the identity of the currently logged-in user. Roles and Buttons
// keep the order the backend returned them in.
type UserInfo struct {
	UserID   string
	UserName string
	Roles    []string
	Buttons  []string
}

// Snapshot is an immutable copy of the session state handed to subscribers.
type Snapshot struct {
	Token    string
	UserInfo UserInfo
}

// State is the session state cell. The zero value is not usable; construct
// with New. All methods are safe for concurrent use.
type State struct {
	cfg Config

	lock    sync.RWMutex
	token   string
	info    UserInfo
	subs    map[int]func(Snapshot)
	nextSub int
}

func New(cfg Config) *State {
	return &State{
		cfg:  cfg,
		info: emptyUserInfo(),
		subs: make(map[int]func(Snapshot)),
	}
}

// Token returns the current session token, empty when logged out.
func (s *State) Token() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token
}

// UserInfo returns a copy of the current identity.
func (s *State) UserInfo() UserInfo {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return copyUserInfo(s.info)
}

// IsLoggedIn reports whether a session token is present.
func (s *State) IsLoggedIn() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token != ""
}

// IsStaticSuper reports whether the current identity carries the configured
// super role. It is true only under the static route mode.
func (s *State) IsStaticSuper() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.cfg.GetAuthRouteMode() != RouteModeStatic {
		return false
	}
	superRole := s.cfg.GetStaticSuperRole()
	for _, role := range s.info.Roles {
		if role == superRole {
			return true
		}
	}
	return false
}

// SetToken replaces the session token.
func (s *State) SetToken(token string) {
	s.lock.Lock()
	s.token = token
	snapshot, subs := s.snapshotLocked()
	s.lock.Unlock()

	notify(snapshot, subs)
}

// SetUserInfo replaces the identity record.
func (s *State) SetUserInfo(info UserInfo) {
	s.lock.Lock()
	s.info = copyUserInfo(info)
	snapshot, subs := s.snapshotLocked()
	s.lock.Unlock()

	notify(snapshot, subs)
}

// Clear empties the identity and then the token in a single write, so
// subscribers never observe identity-present-but-token-absent.
func (s *State) Clear() {
	s.lock.Lock()
	s.info = emptyUserInfo()
	s.token = ""
	snapshot, subs := s.snapshotLocked()
	s.lock.Unlock()

	notify(snapshot, subs)
}

// Subscribe registers fn to be called synchronously after every state write.
// Callbacks run on the writing goroutine and must not block. The returned
// function removes the subscription.
func (s *State) Subscribe(fn func(Snapshot)) func() {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.subs, id)
	}
}

func (s *State) snapshotLocked() (Snapshot, []func(Snapshot)) {
	snapshot := Snapshot{Token: s.token, UserInfo: copyUserInfo(s.info)}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snapshot, subs
}

func notify(snapshot Snapshot, subs []func(Snapshot)) {
	for _, fn := range subs {
		fn(snapshot)
	}
}

func emptyUserInfo() UserInfo {
	return UserInfo{Roles: []string{}, Buttons: []string{}}
}

func copyUserInfo(info UserInfo) UserInfo {
	copied := UserInfo{
		UserID:   info.UserID,
		UserName: info.UserName,
		Roles:    make([]string, len(info.Roles)),
		Buttons:  make([]string, len(info.Buttons)),
	}
	copy(copied.Roles, info.Roles)
	copy(copied.Buttons, info.Buttons)
	return copied
}
