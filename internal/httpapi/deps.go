package httpapi

import (
	"context"
	"sync/atomic"

	"oppintel-engine/internal/config"
	"oppintel-engine/internal/domain"
	"oppintel-engine/internal/events"
	"oppintel-engine/internal/pipeline"
	"oppintel-engine/internal/poll"
)

type Deps struct {
	Hub *events.Hub

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Injected store/pipeline entrypoints (funcs for testability)
	ListOpportunities func(ctx context.Context) ([]domain.Opportunity, error)
	RunNow            func(ctx context.Context) (pipeline.Summary, error)
	RunStatus         func() poll.RunStatus
}
