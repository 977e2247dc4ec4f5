package services

import (
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/timex"
)

// Stage is the position of a requester in the registration dialogue.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingName
	StageAwaitingSecondaryKey
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingName:
		return "awaiting_name"
	case StageAwaitingSecondaryKey:
		return "awaiting_secondary_key"
	default:
		return "idle"
	}
}

// Dialogue is the in-memory registration intent of one requester.
type Dialogue struct {
	IdentityKey string
	Stage       Stage
	DisplayName string
	UpdatedAt   time.Time
}

// Dialogues holds open registration dialogues keyed by requester. Entries
// idle for longer than ttl count as absent; ttl 0 keeps them forever.
type Dialogues struct {
	mu    sync.Mutex
	items map[string]*Dialogue
	clock timex.Clock
	ttl   time.Duration
}

func NewDialogues(clock timex.Clock, ttl time.Duration) *Dialogues {
	return &Dialogues{items: make(map[string]*Dialogue), clock: clock, ttl: ttl}
}

// get must be called with mu held.
func (d *Dialogues) get(key string, now time.Time) (*Dialogue, bool) {
	item, ok := d.items[key]
	if !ok {
		return nil, false
	}
	if d.expired(item, now) {
		delete(d.items, key)
		return nil, false
	}
	return item, true
}

func (d *Dialogues) expired(item *Dialogue, now time.Time) bool {
	return d.ttl > 0 && now.Sub(item.UpdatedAt) > d.ttl
}

// Get returns a copy of the requester's dialogue.
func (d *Dialogues) Get(key string) (Dialogue, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	item, ok := d.get(key, d.clock.Now())
	if !ok {
		return Dialogue{IdentityKey: key, Stage: StageIdle}, false
	}
	return *item, true
}

// Start opens a dialogue in StageAwaitingName. When one is already open it
// is returned unchanged and started is false.
func (d *Dialogues) Start(key string) (dlg Dialogue, started bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	if item, ok := d.get(key, now); ok {
		return *item, false
	}

	item := &Dialogue{IdentityKey: key, Stage: StageAwaitingName, UpdatedAt: now}
	d.items[key] = item
	return *item, true
}

// Advance feeds text into the requester's dialogue. In StageAwaitingName the
// trimmed text becomes the display name. In StageAwaitingSecondaryKey the
// dialogue is removed and returned with complete set; the caller owns the
// rest of the registration. Blank input discards the dialogue with
// common.ErrValidation.
func (d *Dialogues) Advance(key, text string) (dlg Dialogue, complete bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	item, ok := d.get(key, now)
	if !ok {
		return Dialogue{IdentityKey: key, Stage: StageIdle}, false, common.ErrNoDialogue
	}

	text = strings.TrimSpace(text)
	if text == "" {
		delete(d.items, key)
		return *item, false, common.ErrValidation
	}

	switch item.Stage {
	case StageAwaitingName:
		item.DisplayName = text
		item.Stage = StageAwaitingSecondaryKey
		item.UpdatedAt = now
		return *item, false, nil
	default:
		delete(d.items, key)
		return *item, true, nil
	}
}

// Cancel discards the requester's dialogue and reports whether one was open.
func (d *Dialogues) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.get(key, d.clock.Now())
	delete(d.items, key)
	return ok
}

// Sweep drops expired dialogues and returns how many were removed.
func (d *Dialogues) Sweep() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ttl <= 0 {
		return 0
	}

	now := d.clock.Now()
	n := 0
	for key, item := range d.items {
		if d.expired(item, now) {
			delete(d.items, key)
			n++
		}
	}
	return n
}

// Len reports the number of stored dialogues, expired ones included.
func (d *Dialogues) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}
