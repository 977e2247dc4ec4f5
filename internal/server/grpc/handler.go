package grpc

import (
	"context"

	"github.com/dmitrijs2005/rollcall/internal/rpc"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/services"
)

func (s *GRPCServer) CheckIn(ctx context.Context, req *rpc.CheckInRequest) (*rpc.Reply, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := s.attendance.CheckIn(ctx, who)
	if err != nil {
		return nil, toStatus(err)
	}

	return toReply(reply), nil
}

func (s *GRPCServer) Input(ctx context.Context, req *rpc.InputRequest) (*rpc.Reply, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := s.attendance.Input(ctx, who, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}

	return toReply(reply), nil
}

func (s *GRPCServer) Cancel(ctx context.Context, req *rpc.CancelRequest) (*rpc.CancelResponse, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	return &rpc.CancelResponse{Cancelled: s.attendance.Cancel(ctx, who)}, nil
}

func (s *GRPCServer) History(ctx context.Context, req *rpc.HistoryRequest) (*rpc.HistoryResponse, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	h, err := s.attendance.History(ctx, who, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.HistoryResponse{Identity: toIdentity(h.Identity), Events: toEvents(h.Events), TotalDays: h.TotalDays}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, req *rpc.ProfileRequest) (*rpc.ProfileResponse, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.attendance.Profile(ctx, who)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.ProfileResponse{Identity: toIdentity(p.Identity), TotalDays: p.TotalDays, IsAdmin: s.admin.IsAdmin(who)}, nil
}

func (s *GRPCServer) Status(ctx context.Context, req *rpc.StatusRequest) (*rpc.StatusResponse, error) {
	return &rpc.StatusResponse{Active: s.attendance.Status()}, nil
}

func (s *GRPCServer) Notifications(ctx context.Context, req *rpc.NotificationsRequest) (*rpc.NotificationsResponse, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	msgs := s.mailbox.Drain(who)
	if msgs == nil {
		msgs = []string{}
	}
	return &rpc.NotificationsResponse{Messages: msgs}, nil
}

func (s *GRPCServer) SetAvailability(ctx context.Context, req *rpc.SetAvailabilityRequest) (*rpc.SetAvailabilityResponse, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.admin.SetAvailability(ctx, who, req.Active); err != nil {
		return nil, toStatus(err)
	}

	return &rpc.SetAvailabilityResponse{Active: s.attendance.Status()}, nil
}

func (s *GRPCServer) DeleteIdentity(ctx context.Context, req *rpc.DeleteIdentityRequest) (*rpc.DeleteIdentityResponse, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	identity, err := s.admin.DeleteIdentity(ctx, who, req.SecondaryKey)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.DeleteIdentityResponse{Identity: toIdentity(identity)}, nil
}

func (s *GRPCServer) GenerateReport(ctx context.Context, req *rpc.GenerateReportRequest) (*rpc.GenerateReportResponse, error) {
	who, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.admin.GenerateReport(ctx, who, req.Date)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.GenerateReportResponse{Date: r.Date, Count: r.Count, Path: r.Path, URL: r.URL, Events: toEvents(r.Events)}, nil
}

func toReply(r *services.Reply) *rpc.Reply {
	return &rpc.Reply{
		Stage:          r.Stage.String(),
		Pending:        r.Pending,
		Registered:     r.Registered,
		Identity:       toIdentity(r.Identity),
		Event:          toEvent(r.Event),
		MirrorDegraded: r.MirrorDegraded,
	}
}

func toIdentity(i *models.Identity) *rpc.Identity {
	if i == nil {
		return nil
	}
	return &rpc.Identity{
		IdentityKey:  i.IdentityKey,
		DisplayName:  i.DisplayName,
		SecondaryKey: i.SecondaryKey,
		RegisteredAt: i.RegisteredAt,
	}
}

func toEvent(e *models.CheckInEvent) *rpc.CheckInEvent {
	if e == nil {
		return nil
	}
	return &rpc.CheckInEvent{
		ID:           e.ID,
		IdentityKey:  e.IdentityKey,
		DisplayName:  e.DisplayName,
		SecondaryKey: e.SecondaryKey,
		CalendarDate: e.CalendarDate,
		EventTime:    e.EventTime,
	}
}

func toEvents(items []models.CheckInEvent) []rpc.CheckInEvent {
	out := make([]rpc.CheckInEvent, 0, len(items))
	for i := range items {
		out = append(out, *toEvent(&items[i]))
	}
	return out
}
