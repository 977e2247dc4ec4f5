package client

import (
	"context"

	"github.com/dmitrijs2005/rollcall/internal/rpc"
)

// Client is the API contract of the rollcall server as seen by the console.
type Client interface {
	Close() error
	CheckIn(ctx context.Context) (*rpc.Reply, error)
	Input(ctx context.Context, text string) (*rpc.Reply, error)
	Cancel(ctx context.Context) (bool, error)
	History(ctx context.Context, limit int) (*rpc.HistoryResponse, error)
	Profile(ctx context.Context) (*rpc.ProfileResponse, error)
	Status(ctx context.Context) (bool, error)
	Notifications(ctx context.Context) ([]string, error)
	SetAvailability(ctx context.Context, active bool) (bool, error)
	DeleteIdentity(ctx context.Context, secondaryKey string) (*rpc.Identity, error)
	GenerateReport(ctx context.Context, date string) (*rpc.GenerateReportResponse, error)
}

var _ Client = (*GRPCClient)(nil)
