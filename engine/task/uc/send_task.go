package uc

import (
	"context"
	"fmt"

	"github.com/taskwire/taskwire/engine/card"
	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/engine/task"
	"github.com/taskwire/taskwire/engine/webhook"
	"github.com/taskwire/taskwire/pkg/logger"
)

// Dispatcher posts a rendered card payload and reports the outcome.
type Dispatcher interface {
	Dispatch(ctx context.Context, domainKey string, payload *card.Payload) webhook.Result
}

// SendTask use case for resolving a submission, rendering the card and
// posting it to the webhook.
type SendTask struct {
	catalog    *domain.Catalog
	dispatcher Dispatcher
	metrics    *webhook.Metrics
	opts       task.Options
	input      *task.Input
}

// NewSendTask creates a new send task use case. metrics may be nil.
func NewSendTask(
	catalog *domain.Catalog,
	dispatcher Dispatcher,
	metrics *webhook.Metrics,
	opts task.Options,
	input *task.Input,
) *SendTask {
	return &SendTask{
		catalog:    catalog,
		dispatcher: dispatcher,
		metrics:    metrics,
		opts:       opts,
		input:      input,
	}
}

// Execute runs the submission through normalization, rendering and dispatch.
// Every failure is returned as a structured result; callers never see a bare
// error.
func (uc *SendTask) Execute(ctx context.Context) webhook.Result {
	log := logger.FromContext(ctx)
	resolved, err := task.Normalize(uc.input, uc.catalog, uc.opts)
	if err != nil {
		log.Error("Failed to parse input", "error", err)
		return webhook.Result{Success: false, Message: fmt.Sprintf("Invalid input: %s", err)}
	}
	payload := card.Build(resolved, uc.input.ResolveDescription())
	uc.metrics.RecordCardBuilt(ctx, resolved.Domain)
	log.Debug("Card rendered", "domain", resolved.Domain, "title", resolved.Title)
	return uc.dispatcher.Dispatch(ctx, resolved.Domain, payload)
}
