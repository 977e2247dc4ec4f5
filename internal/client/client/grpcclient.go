package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/rpc"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *rpc.Client
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

// NewAttendanceClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults, which tests use to plug in a bufconn dialer.
func NewAttendanceClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) CheckIn(ctx context.Context) (*rpc.Reply, error) {
	resp, err := s.client.CheckIn(ctx)
	return resp, s.mapError(err)
}

func (s *GRPCClient) Input(ctx context.Context, text string) (*rpc.Reply, error) {
	resp, err := s.client.Input(ctx, text)
	return resp, s.mapError(err)
}

func (s *GRPCClient) Cancel(ctx context.Context) (bool, error) {
	resp, err := s.client.Cancel(ctx)
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Cancelled, nil
}

func (s *GRPCClient) History(ctx context.Context, limit int) (*rpc.HistoryResponse, error) {
	resp, err := s.client.History(ctx, limit)
	return resp, s.mapError(err)
}

func (s *GRPCClient) Profile(ctx context.Context) (*rpc.ProfileResponse, error) {
	resp, err := s.client.Profile(ctx)
	return resp, s.mapError(err)
}

func (s *GRPCClient) Status(ctx context.Context) (bool, error) {
	resp, err := s.client.Status(ctx)
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Active, nil
}

func (s *GRPCClient) Notifications(ctx context.Context) ([]string, error) {
	resp, err := s.client.Notifications(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Messages, nil
}

func (s *GRPCClient) SetAvailability(ctx context.Context, active bool) (bool, error) {
	resp, err := s.client.SetAvailability(ctx, active)
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Active, nil
}

func (s *GRPCClient) DeleteIdentity(ctx context.Context, secondaryKey string) (*rpc.Identity, error) {
	resp, err := s.client.DeleteIdentity(ctx, secondaryKey)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Identity, nil
}

func (s *GRPCClient) GenerateReport(ctx context.Context, date string) (*rpc.GenerateReportResponse, error) {
	resp, err := s.client.GenerateReport(ctx, date)
	return resp, s.mapError(err)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	for _, known := range knownErrors {
		if st.Message() == known.Error() {
			return known
		}
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
