// Package mq publishes prediction events to the message broker.
package mq

import (
	"context"
	"encoding/json"

	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/messaging"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/prediction/usecase"
	"github.com/sentiqlab/sentiq/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID = "cID"
const keyOfMessageID = "messageID"

// Messaging publishes prediction events.
type Messaging struct {
	client messaging.Publisher
	oid    uid.StringID
	ins    instrument.Instrumentation
}

// NewMessaging constructs the adapter. oid generates broker message IDs.
func NewMessaging(client messaging.Publisher, oid uid.StringID, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, oid: oid, ins: ins}
}

// PublishPredictionCreated announces a stored prediction. The partition key
// is the owning user so one user's events stay ordered.
func (m *Messaging) PublishPredictionCreated(ctx context.Context, msg usecase.PredictionCreatedEvent) error {
	ctx, span := m.ins.Tracer("prediction.outbound.mq").Start(ctx, "PublishPredictionCreated")
	defer span.End()

	body, err := json.Marshal(event.PredictionCreatedMessage{
		PredictionID: msg.PredictionID,
		UserID:       msg.UserID,
		Label:        msg.Label,
		Score:        msg.Score,
		ModelVersion: msg.ModelVersion,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := messaging.OutgoingMessage{
		Body: body,
		Key:  []byte(msg.UserID),
		Headers: []messaging.Header{
			{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))},
			{Key: keyOfMessageID, Value: []byte(m.oid.Generate())},
		},
	}

	if _, err := m.client.Publish(ctx, event.PredictionCreatedDestination, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
