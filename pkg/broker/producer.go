package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/honlnm/biztime/internal/entity"
)

type Producer struct {
	l                  *slog.Logger
	w                  *kafka.Writer
	invoiceEventsTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                  l,
		w:                  w,
		invoiceEventsTopic: topic,
	}
}

type InvoiceEvent struct {
	Type       string      `json:"type"`
	InvoiceID  int64       `json:"invoice_id"`
	CompCode   string      `json:"comp_code"`
	Amount     json.Number `json:"amt"`
	Paid       bool        `json:"paid"`
	PaidDate   *time.Time  `json:"paid_date"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewInvoiceEvent(eventType entity.InvoiceEventType, inv entity.Invoice, occurredAt time.Time) InvoiceEvent {
	return InvoiceEvent{
		Type:       eventType.String(),
		InvoiceID:  inv.ID,
		CompCode:   inv.CompCode,
		Amount:     json.Number(inv.Amount.String()),
		Paid:       inv.Paid,
		PaidDate:   inv.PaidDate,
		OccurredAt: occurredAt,
	}
}

// SendInvoiceEvent publishes the event keyed by invoice id, so events of one
// invoice land on the same partition.
func (p *Producer) SendInvoiceEvent(ctx context.Context, eventType entity.InvoiceEventType, inv entity.Invoice) {
	b, err := json.Marshal(NewInvoiceEvent(eventType, inv, time.Now()))
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(inv.ID, 10)),
		Value: b,
		Topic: p.invoiceEventsTopic,
	})
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

// NopProducer drops events. Used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) SendInvoiceEvent(ctx context.Context, eventType entity.InvoiceEventType, inv entity.Invoice) {
	slog.DebugContext(ctx, "event publishing disabled", "type", eventType.String(), "invoice_id", inv.ID)
}

func (NopProducer) Close() {}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
