package inbox

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"leados.app/inbox/internal/domain"
)

// FilterAll is the filter value that matches every channel or status.
const FilterAll = "All"

type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortCustomer SortOrder = "customer"
)

type Filters struct {
	Channel string // FilterAll, "" or a channel name
	Status  string // FilterAll, "" or a status name
	Query   string
}

// FilterUpdate merges into the current Filters; nil fields are left alone.
type FilterUpdate struct {
	Channel *string
	Status  *string
	Query   *string
}

type Tally struct {
	Total     int
	ByChannel map[domain.Channel]int
	ByStatus  map[domain.ConversationStatus]int
}

// List holds the conversation collection, the selection and the filters.
// It is safe for concurrent use; callers receive copies.
type List struct {
	mu         sync.RWMutex
	items      []Conversation
	selectedID string
	filters    Filters
	sort       SortOrder
	generation uint64 // last issued by BeginLoad
	applied    uint64 // generation of the items currently held
}

func NewList() *List {
	return &List{
		filters: Filters{Channel: FilterAll, Status: FilterAll},
		sort:    SortNewest,
	}
}

// Load replaces the collection. A selection that no longer exists moves to the first
// item of the filtered view, or to none when that view is empty.
func (l *List) Load(items []Conversation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked(items)
}

// BeginLoad starts a refresh and returns its generation for LoadIfNewer.
func (l *List) BeginLoad() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	return l.generation
}

// LoadIfNewer applies items unless a load started after gen has already been applied.
// A newer load that never completes does not hold back an older one.
func (l *List) LoadIfNewer(gen uint64, items []Conversation) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen <= l.applied {
		return false
	}
	l.applied = gen
	l.loadLocked(items)
	return true
}

func (l *List) loadLocked(items []Conversation) {
	l.items = make([]Conversation, len(items))
	for i := range items {
		l.items[i] = items[i].clone()
	}
	l.repairSelectionLocked()
}

func (l *List) repairSelectionLocked() {
	if l.selectedID != "" && l.indexLocked(l.selectedID) >= 0 {
		return
	}
	view := l.filteredLocked()
	if len(view) == 0 {
		l.selectedID = ""
		return
	}
	l.selectedID = view[0].ID
}

func (l *List) SetFilter(update FilterUpdate) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if update.Channel != nil {
		l.filters.Channel = *update.Channel
	}
	if update.Status != nil {
		l.filters.Status = *update.Status
	}
	if update.Query != nil {
		l.filters.Query = *update.Query
	}
}

func (l *List) Filters() Filters {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filters
}

func (l *List) SetSort(order SortOrder) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch order {
	case SortOldest, SortCustomer:
		l.sort = order
	default:
		l.sort = SortNewest
	}
}

// Select sets the selection when id exists; otherwise it does nothing.
func (l *List) Select(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexLocked(id) < 0 {
		return false
	}
	l.selectedID = id
	return true
}

func (l *List) SelectedID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.selectedID
}

func (l *List) Selected() (Conversation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.indexLocked(l.selectedID)
	if i < 0 {
		return Conversation{}, false
	}
	return l.items[i].clone(), true
}

func (l *List) Get(id string) (Conversation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.indexLocked(id)
	if i < 0 {
		return Conversation{}, false
	}
	return l.items[i].clone(), true
}

// Items returns the whole collection in load order.
func (l *List) Items() []Conversation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Conversation, len(l.items))
	for i := range l.items {
		out[i] = l.items[i].clone()
	}
	return out
}

// Filtered is the current view: items matching every filter, in sort order.
func (l *List) Filtered() []Conversation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filteredLocked()
}

// Page slices the filtered view. An offset past the end yields an empty page.
func (l *List) Page(offset, limit int) []Conversation {
	view := l.Filtered()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(view) || limit <= 0 {
		return []Conversation{}
	}
	end := min(offset+limit, len(view))
	return view[offset:end]
}

// Tally counts the whole collection by channel and by status, ignoring filters.
func (l *List) Tally() Tally {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t := Tally{
		Total:     len(l.items),
		ByChannel: make(map[domain.Channel]int),
		ByStatus:  make(map[domain.ConversationStatus]int),
	}
	for _, c := range l.items {
		t.ByChannel[c.Channel]++
		t.ByStatus[c.Status]++
	}
	return t
}

func (l *List) filteredLocked() []Conversation {
	out := make([]Conversation, 0, len(l.items))
	for _, c := range l.items {
		if matches(c, l.filters) {
			out = append(out, c.clone())
		}
	}

	switch l.sort {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b Conversation) int { return compareTimestamps(a.Timestamp, b.Timestamp) })
	case SortCustomer:
		slices.SortStableFunc(out, func(a, b Conversation) int {
			return cmp.Compare(strings.ToLower(a.Customer), strings.ToLower(b.Customer))
		})
	default:
		slices.SortStableFunc(out, func(a, b Conversation) int { return compareTimestamps(b.Timestamp, a.Timestamp) })
	}
	return out
}

func matches(c Conversation, f Filters) bool {
	if !isAll(f.Channel) && !strings.EqualFold(string(c.Channel), f.Channel) {
		return false
	}
	if !isAll(f.Status) && !strings.EqualFold(string(c.Status), f.Status) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Customer), q) ||
		strings.Contains(strings.ToLower(c.Subject), q) ||
		strings.Contains(strings.ToLower(c.LastMessage), q)
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}

// compareTimestamps orders RFC 3339 values by instant. Unparseable or empty values sort
// before any real time and compare lexically among themselves.
func compareTimestamps(a, b string) int {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	switch {
	case errA == nil && errB == nil:
		return ta.Compare(tb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	default:
		return cmp.Compare(a, b)
	}
}

func (l *List) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(l.items, func(c Conversation) bool { return c.ID == id })
}

// The methods below are the coordinator's write path.

type cacheSnapshot struct {
	lastMessage string
	timestamp   string
}

// appendPending adds an unconfirmed message and updates the cache fields.
func (l *List) appendPending(convID string, msg Message, correlationID string) (cacheSnapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(convID)
	if i < 0 {
		return cacheSnapshot{}, false
	}
	c := &l.items[i]
	prev := cacheSnapshot{lastMessage: c.LastMessage, timestamp: c.Timestamp}
	msg.correlationID = correlationID
	c.Thread = append(c.Thread, msg)
	c.LastMessage = msg.Content
	c.Timestamp = msg.Timestamp
	return prev, true
}

// confirmPending clears the pending mark. A reload in the meantime makes it a no-op.
func (l *List) confirmPending(convID, correlationID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(convID)
	if i < 0 {
		return false
	}
	thread := l.items[i].Thread
	for j := range thread {
		if thread[j].correlationID == correlationID {
			thread[j].correlationID = ""
			return true
		}
	}
	return false
}

// revertPending removes the pending message and restores the cache fields if they still
// describe it.
func (l *List) revertPending(convID, correlationID string, prev cacheSnapshot) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(convID)
	if i < 0 {
		return false
	}
	c := &l.items[i]
	j := slices.IndexFunc(c.Thread, func(m Message) bool { return m.correlationID == correlationID })
	if j < 0 {
		return false
	}
	removed := c.Thread[j]
	c.Thread = slices.Delete(c.Thread, j, j+1)
	if c.LastMessage == removed.Content && c.Timestamp == removed.Timestamp {
		c.LastMessage = prev.lastMessage
		c.Timestamp = prev.timestamp
	}
	return true
}

// setStatus replaces the status and returns the previous one.
func (l *List) setStatus(convID string, status domain.ConversationStatus) (domain.ConversationStatus, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(convID)
	if i < 0 {
		return "", false
	}
	prev := l.items[i].Status
	l.items[i].Status = status
	return prev, true
}

// restoreStatus rolls back to prev unless something else changed the status since.
func (l *List) restoreStatus(convID string, expected, prev domain.ConversationStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(convID)
	if i < 0 || l.items[i].Status != expected {
		return
	}
	l.items[i].Status = prev
}
