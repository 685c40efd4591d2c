package mongo

import (
	"errors"
	"sync"

	"github.com/logistics-id/mongorepo/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
	"golang.org/x/net/context"
)

// commandMonitor logs every driver command with its duration once it finishes.
type commandMonitor struct {
	logger   *zap.Logger
	commands sync.Map // request id -> bson.Raw
}

func newCommandMonitor(l *zap.Logger) *commandMonitor {
	return &commandMonitor{logger: l}
}

func ignoredCommand(name string) bool {
	switch name {
	case "ping", "endSessions", "hello", "isMaster", "ismaster":
		return true
	}
	return false
}

func (m *commandMonitor) monitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started:   m.started,
		Succeeded: m.succeeded,
		Failed:    m.failed,
	}
}

func (m *commandMonitor) started(_ context.Context, evt *event.CommandStartedEvent) {
	if ignoredCommand(evt.CommandName) {
		return
	}
	m.commands.Store(evt.RequestID, evt.Command)
}

func (m *commandMonitor) succeeded(ctx context.Context, evt *event.CommandSucceededEvent) {
	cmd, ok := m.commands.LoadAndDelete(evt.RequestID)
	if !ok {
		return
	}

	m.logger.Info("MGO/CMD SUCCEEDED", append(contextFields(ctx),
		zap.String("event", evt.CommandName),
		zap.Duration("duration", evt.Duration),
		zap.Any("command", commandMap(cmd.(bson.Raw))),
	)...)
}

func (m *commandMonitor) failed(ctx context.Context, evt *event.CommandFailedEvent) {
	cmd, ok := m.commands.LoadAndDelete(evt.RequestID)
	if !ok {
		return
	}

	m.logger.Error("MGO/CMD FAILED", append(contextFields(ctx),
		zap.String("event", evt.CommandName),
		zap.Duration("duration", evt.Duration),
		zap.Any("command", commandMap(cmd.(bson.Raw))),
		zap.Error(errors.New(evt.Failure)),
	)...)
}

// contextFields tags a command log with the ids carried by ctx. The
// correlation id is only added when one was set.
func contextFields(ctx context.Context) []zap.Field {
	fields := []zap.Field{zap.String("request_id", common.GetContextRequestID(ctx))}
	if cid := common.GetContextCorrelationID(ctx); cid != "" {
		fields = append(fields, zap.String("correlation_id", cid))
	}
	return fields
}
