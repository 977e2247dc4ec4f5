package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "rollcall.Attendance"

// FullMethod returns the gRPC method path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// AttendanceServer is implemented by the server side of the service.
type AttendanceServer interface {
	CheckIn(context.Context, *CheckInRequest) (*Reply, error)
	Input(context.Context, *InputRequest) (*Reply, error)
	Cancel(context.Context, *CancelRequest) (*CancelResponse, error)
	History(context.Context, *HistoryRequest) (*HistoryResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
	Notifications(context.Context, *NotificationsRequest) (*NotificationsResponse, error)
	SetAvailability(context.Context, *SetAvailabilityRequest) (*SetAvailabilityResponse, error)
	DeleteIdentity(context.Context, *DeleteIdentityRequest) (*DeleteIdentityResponse, error)
	GenerateReport(context.Context, *GenerateReportRequest) (*GenerateReportResponse, error)
}

func unary[Req, Resp any](name string, call func(AttendanceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AttendanceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AttendanceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes rollcall.Attendance for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AttendanceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CheckIn", AttendanceServer.CheckIn),
		unary("Input", AttendanceServer.Input),
		unary("Cancel", AttendanceServer.Cancel),
		unary("History", AttendanceServer.History),
		unary("Profile", AttendanceServer.Profile),
		unary("Status", AttendanceServer.Status),
		unary("Notifications", AttendanceServer.Notifications),
		unary("SetAvailability", AttendanceServer.SetAvailability),
		unary("DeleteIdentity", AttendanceServer.DeleteIdentity),
		unary("GenerateReport", AttendanceServer.GenerateReport),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rollcall/attendance",
}

// RegisterAttendanceServer registers srv with s.
func RegisterAttendanceServer(s grpc.ServiceRegistrar, srv AttendanceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
