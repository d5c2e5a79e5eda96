package store

import (
	"leados.app/inbox/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Leads() LeadStore {
	return newLeadStore(s.queries)
}

func (s *Stores) Conversations() ConversationStore {
	return newConversationStore(s.queries)
}

func (s *Stores) Messages() MessageStore {
	return newMessageStore(s.queries)
}

func (s *Stores) Appointments() AppointmentStore {
	return newAppointmentStore(s.queries)
}

func (s *Stores) Summaries() SummaryStore {
	return newSummaryStore(s.queries)
}
