package service

import (
	"time"

	"leados.app/inbox/core/config"
	"leados.app/inbox/internal/queue"
	"leados.app/inbox/internal/store"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	workOSCfg config.WorkOSConfig
	senders   SenderRegistry
	producer  queue.Producer
	location  *time.Location
}

// NewServices wires the request-path services. producer may be nil when no Redis is configured.
func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	workOSCfg config.WorkOSConfig,
	senders SenderRegistry,
	producer queue.Producer,
	location *time.Location,
) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		workOSCfg: workOSCfg,
		senders:   senders,
		producer:  producer,
		location:  location,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions(), s.workOSCfg)
}

func (s *Services) Leads() LeadService {
	return NewLeadService(s.stores.Leads())
}

func (s *Services) Conversations() ConversationService {
	return NewConversationService(
		s.stores.Conversations(),
		s.stores.Messages(),
		s.stores.Summaries(),
		s.txRunner,
		s.producer,
	)
}

func (s *Services) Messages() MessageService {
	return NewMessageService(s.stores.Conversations(), s.senders, s.txRunner, s.producer)
}

func (s *Services) Appointments() AppointmentService {
	return NewAppointmentService(s.stores.Appointments(), s.txRunner, s.location)
}
