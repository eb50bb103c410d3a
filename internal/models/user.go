package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AppMode is the operating personality governing recommendation ranking.
type AppMode string

const (
	ModeNormal  AppMode = "NORMAL"
	ModeFitness AppMode = "FITNESS"
	ModeTourist AppMode = "TOURIST"
)

// Valid reports whether m is one of the known modes.
func (m AppMode) Valid() bool {
	switch m {
	case ModeNormal, ModeFitness, ModeTourist:
		return true
	}
	return false
}

// HealthProfile holds target macros for a user in fitness mode. Values are
// targets, not limits; zero means "no target set".
type HealthProfile struct {
	TargetCalories int     `json:"target_calories"`
	TargetProtein  float64 `json:"target_protein"`
	TargetFat      float64 `json:"target_fat"`
}

// UserProfile carries a user's budget, operating mode and optional health
// goal. A health goal is only meaningful in FITNESS mode, but its absence
// must degrade gracefully rather than fail.
type UserProfile struct {
	Budget     float64        `json:"budget"`
	Mode       AppMode        `json:"mode"`
	HealthGoal *HealthProfile `json:"health_goal,omitempty"`
}

// DietLog is a timestamped record linking a user to a consumed menu item.
// UserID and MenuItemID are non-owning back-references resolved through the
// catalog. PortionSize is kept as the raw string the client sent; analytics
// parses it as a multiplier.
type DietLog struct {
	LogID       string    `json:"log_id"`
	Timestamp   time.Time `json:"timestamp"`
	PortionSize string    `json:"portion_size"`
	UserID      string    `json:"-"`
	MenuItemID  string    `json:"-"`
}

// User is an identity with credentials, an optional profile and an
// append-only diet log list. Profile and log mutations run under a per-user
// lock.
type User struct {
	UserID         string
	Username       string
	HashedPassword string

	mu       sync.RWMutex
	profile  *UserProfile
	dietLogs []*DietLog
}

// NewUser creates a user without a profile or diet logs.
func NewUser(id, username, hashedPassword string) *User {
	return &User{
		UserID:         id,
		Username:       username,
		HashedPassword: hashedPassword,
	}
}

// cloneProfile deep-copies p. A nil p yields a fresh NORMAL profile.
// Published profiles are never mutated in place: readers hold the pointer
// Profile returned without any lock, so every setter swaps in a copy.
func cloneProfile(p *UserProfile) *UserProfile {
	if p == nil {
		return &UserProfile{Mode: ModeNormal}
	}
	next := *p
	if p.HealthGoal != nil {
		goal := *p.HealthGoal
		next.HealthGoal = &goal
	}
	return &next
}

// Profile returns an immutable snapshot of the user's profile, or nil when
// none is set. Later setter calls never change the returned value.
func (u *User) Profile() *UserProfile {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.profile
}

// SetProfile replaces the user's profile wholesale. The profile is copied
// so the caller cannot mutate the published value afterwards.
func (u *User) SetProfile(p *UserProfile) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if p == nil {
		u.profile = nil
		return
	}
	u.profile = cloneProfile(p)
}

// SetMode switches the operating mode, creating a profile if needed.
func (u *User) SetMode(mode AppMode) error {
	if !mode.Valid() {
		return NewValidationError("mode", "must be NORMAL, FITNESS or TOURIST")
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	next := cloneProfile(u.profile)
	next.Mode = mode
	u.profile = next
	return nil
}

// SetBudget updates the profile budget, creating a profile if needed.
func (u *User) SetBudget(amount float64) error {
	if amount < 0 {
		return NewValidationError("budget", "must not be negative")
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	next := cloneProfile(u.profile)
	next.Budget = amount
	u.profile = next
	return nil
}

// SetHealthGoal replaces the health goal wholesale, creating a FITNESS
// profile if none exists.
func (u *User) SetHealthGoal(goal *HealthProfile) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var next *UserProfile
	if u.profile == nil {
		next = &UserProfile{Mode: ModeFitness}
	} else {
		next = cloneProfile(u.profile)
	}
	if goal != nil {
		g := *goal
		next.HealthGoal = &g
	} else {
		next.HealthGoal = nil
	}
	u.profile = next
}

// LogMeal creates a diet log for the given menu item and appends it to the
// user's log list. The log ID is globally unique.
func (u *User) LogMeal(item *MenuItem, portionSize string, timestamp time.Time) *DietLog {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	if portionSize == "" {
		portionSize = "1"
	}
	log := &DietLog{
		LogID:       uuid.NewString(),
		Timestamp:   timestamp,
		PortionSize: portionSize,
		UserID:      u.UserID,
		MenuItemID:  item.ItemID,
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dietLogs = append(u.dietLogs, log)
	return log
}

// DietLogs returns the user's diet logs in append order.
func (u *User) DietLogs() []*DietLog {
	u.mu.RLock()
	defer u.mu.RUnlock()
	logs := make([]*DietLog, len(u.dietLogs))
	copy(logs, u.dietLogs)
	return logs
}
