package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client is a typed stub for rollcall.Attendance. Every call is sent with
// the JSON content-subtype.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CheckIn(ctx context.Context, opts ...grpc.CallOption) (*Reply, error) {
	return invoke[Reply](ctx, c.cc, "CheckIn", &CheckInRequest{}, opts)
}

func (c *Client) Input(ctx context.Context, text string, opts ...grpc.CallOption) (*Reply, error) {
	return invoke[Reply](ctx, c.cc, "Input", &InputRequest{Text: text}, opts)
}

func (c *Client) Cancel(ctx context.Context, opts ...grpc.CallOption) (*CancelResponse, error) {
	return invoke[CancelResponse](ctx, c.cc, "Cancel", &CancelRequest{}, opts)
}

func (c *Client) History(ctx context.Context, limit int, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[HistoryResponse](ctx, c.cc, "History", &HistoryRequest{Limit: limit}, opts)
}

func (c *Client) Profile(ctx context.Context, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, "Profile", &ProfileRequest{}, opts)
}

func (c *Client) Status(ctx context.Context, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "Status", &StatusRequest{}, opts)
}

func (c *Client) Notifications(ctx context.Context, opts ...grpc.CallOption) (*NotificationsResponse, error) {
	return invoke[NotificationsResponse](ctx, c.cc, "Notifications", &NotificationsRequest{}, opts)
}

func (c *Client) SetAvailability(ctx context.Context, active bool, opts ...grpc.CallOption) (*SetAvailabilityResponse, error) {
	return invoke[SetAvailabilityResponse](ctx, c.cc, "SetAvailability", &SetAvailabilityRequest{Active: active}, opts)
}

func (c *Client) DeleteIdentity(ctx context.Context, secondaryKey string, opts ...grpc.CallOption) (*DeleteIdentityResponse, error) {
	return invoke[DeleteIdentityResponse](ctx, c.cc, "DeleteIdentity", &DeleteIdentityRequest{SecondaryKey: secondaryKey}, opts)
}

func (c *Client) GenerateReport(ctx context.Context, date string, opts ...grpc.CallOption) (*GenerateReportResponse, error) {
	return invoke[GenerateReportResponse](ctx, c.cc, "GenerateReport", &GenerateReportRequest{Date: date}, opts)
}
