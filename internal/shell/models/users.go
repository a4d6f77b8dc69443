package models

import "fmt"

// Users is an insertion-ordered set of identities keyed by username.
type Users struct {
	order  []string
	byName map[string]Identity
}

func NewUsers(identities ...Identity) *Users {
	u := &Users{byName: make(map[string]Identity)}
	for _, id := range identities {
		u.Put(id)
	}
	return u
}

// Put inserts identity or replaces an existing one in place.
func (u *Users) Put(identity Identity) {
	if _, ok := u.byName[identity.Username]; !ok {
		u.order = append(u.order, identity.Username)
	}
	u.byName[identity.Username] = identity
}

// Add inserts identity and fails if the name is taken.
func (u *Users) Add(identity Identity) error {
	if _, ok := u.byName[identity.Username]; ok {
		return fmt.Errorf("user %q already exists", identity.Username)
	}
	u.Put(identity)
	return nil
}

func (u *Users) Get(username string) (Identity, bool) {
	id, ok := u.byName[username]
	return id, ok
}

// Remove deletes username and reports whether it was present.
func (u *Users) Remove(username string) bool {
	if _, ok := u.byName[username]; !ok {
		return false
	}
	delete(u.byName, username)
	for i, name := range u.order {
		if name == username {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns usernames in insertion order.
func (u *Users) Names() []string {
	out := make([]string, len(u.order))
	copy(out, u.order)
	return out
}

// All returns identities in insertion order.
func (u *Users) All() []Identity {
	out := make([]Identity, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, u.byName[name])
	}
	return out
}

func (u *Users) Len() int {
	return len(u.order)
}
