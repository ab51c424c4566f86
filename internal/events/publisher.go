package events

import (
	"encoding/json"

	"playercare/internal/model"

	"github.com/nats-io/nats.go"
)

// Subjects for support outcome events.
const (
	SubjectResolutionCreated = "support.resolution.created"
	SubjectEscalationRaised  = "support.escalation.raised"
)

// Publisher emits support outcome events to NATS so downstream consumers
// (agent dashboards, analytics) can react without polling the ticket store.
type Publisher struct {
	nc *nats.Conn
}

// NewPublisher wraps an established NATS connection. nc may be nil; every
// publish is then a no-op, which lets the engine run without a broker.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// PublishResolution announces a successfully resolved ticket.
func (p *Publisher) PublishResolution(ticket *model.SupportTicket) error {
	return p.publish(SubjectResolutionCreated, ticket)
}

// PublishEscalation announces a ticket automation could not handle.
func (p *Publisher) PublishEscalation(ticket *model.SupportTicket) error {
	return p.publish(SubjectEscalationRaised, ticket)
}

func (p *Publisher) publish(subject string, ticket *model.SupportTicket) error {
	if p == nil || p.nc == nil {
		return nil
	}
	data, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, data)
}
