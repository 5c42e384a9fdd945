// Package devv1 defines the dev-only dev.v1 messages, exchanged as JSON over gRPC.
package devv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-service/api/rpcjson"
)

const ServiceName = "dev.v1.DevService"

const GetRecoveryTokenMethod = "/dev.v1.DevService/GetRecoveryToken"

type GetRecoveryTokenRequest struct {
	Email string `json:"email"`
}

func (x *GetRecoveryTokenRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

type GetRecoveryTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Note      string    `json:"note"`
}

type DevServiceServer interface {
	GetRecoveryToken(context.Context, *GetRecoveryTokenRequest) (*GetRecoveryTokenResponse, error)
}

// UnimplementedDevServiceServer answers every method with codes.Unimplemented.
type UnimplementedDevServiceServer struct{}

func (UnimplementedDevServiceServer) GetRecoveryToken(context.Context, *GetRecoveryTokenRequest) (*GetRecoveryTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRecoveryToken not implemented")
}

var DevServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DevServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetRecoveryToken",
			Handler: rpcjson.Unary(GetRecoveryTokenMethod, func(srv any, ctx context.Context, in *GetRecoveryTokenRequest) (*GetRecoveryTokenResponse, error) {
				return srv.(DevServiceServer).GetRecoveryToken(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dev/v1",
}

func RegisterDevServiceServer(s grpc.ServiceRegistrar, srv DevServiceServer) {
	s.RegisterService(&DevServiceDesc, srv)
}

type DevServiceClient interface {
	GetRecoveryToken(ctx context.Context, in *GetRecoveryTokenRequest, opts ...grpc.CallOption) (*GetRecoveryTokenResponse, error)
}

type devServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDevServiceClient(cc grpc.ClientConnInterface) DevServiceClient {
	return &devServiceClient{cc: cc}
}

func (c *devServiceClient) GetRecoveryToken(ctx context.Context, in *GetRecoveryTokenRequest, opts ...grpc.CallOption) (*GetRecoveryTokenResponse, error) {
	return rpcjson.Invoke[GetRecoveryTokenResponse](ctx, c.cc, GetRecoveryTokenMethod, in, opts...)
}
