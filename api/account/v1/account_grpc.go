package accountv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-service/api/rpcjson"
)

const ServiceName = "account.v1.AccountService"

// Full method names.
const (
	CreateUserMethod           = "/account.v1.AccountService/CreateUser"
	LoginMethod                = "/account.v1.AccountService/Login"
	UpdateUserMethod           = "/account.v1.AccountService/UpdateUser"
	RequestPasswordResetMethod = "/account.v1.AccountService/RequestPasswordReset"
	PerformPasswordResetMethod = "/account.v1.AccountService/PerformPasswordReset"
)

type AccountServiceServer interface {
	CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UpdateUserResponse, error)
	RequestPasswordReset(context.Context, *RequestPasswordResetRequest) (*RequestPasswordResetResponse, error)
	PerformPasswordReset(context.Context, *PerformPasswordResetRequest) (*PerformPasswordResetResponse, error)
}

// UnimplementedAccountServiceServer answers every method with codes.Unimplemented. Embed it for forward compatibility.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUser not implemented")
}

func (UnimplementedAccountServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAccountServiceServer) UpdateUser(context.Context, *UpdateUserRequest) (*UpdateUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateUser not implemented")
}

func (UnimplementedAccountServiceServer) RequestPasswordReset(context.Context, *RequestPasswordResetRequest) (*RequestPasswordResetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestPasswordReset not implemented")
}

func (UnimplementedAccountServiceServer) PerformPasswordReset(context.Context, *PerformPasswordResetRequest) (*PerformPasswordResetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PerformPasswordReset not implemented")
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler: rpcjson.Unary(CreateUserMethod, func(srv any, ctx context.Context, in *CreateUserRequest) (*CreateUserResponse, error) {
				return srv.(AccountServiceServer).CreateUser(ctx, in)
			}),
		},
		{
			MethodName: "Login",
			Handler: rpcjson.Unary(LoginMethod, func(srv any, ctx context.Context, in *LoginRequest) (*LoginResponse, error) {
				return srv.(AccountServiceServer).Login(ctx, in)
			}),
		},
		{
			MethodName: "UpdateUser",
			Handler: rpcjson.Unary(UpdateUserMethod, func(srv any, ctx context.Context, in *UpdateUserRequest) (*UpdateUserResponse, error) {
				return srv.(AccountServiceServer).UpdateUser(ctx, in)
			}),
		},
		{
			MethodName: "RequestPasswordReset",
			Handler: rpcjson.Unary(RequestPasswordResetMethod, func(srv any, ctx context.Context, in *RequestPasswordResetRequest) (*RequestPasswordResetResponse, error) {
				return srv.(AccountServiceServer).RequestPasswordReset(ctx, in)
			}),
		},
		{
			MethodName: "PerformPasswordReset",
			Handler: rpcjson.Unary(PerformPasswordResetMethod, func(srv any, ctx context.Context, in *PerformPasswordResetRequest) (*PerformPasswordResetResponse, error) {
				return srv.(AccountServiceServer).PerformPasswordReset(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "account/v1",
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

type AccountServiceClient interface {
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UpdateUserResponse, error)
	RequestPasswordReset(ctx context.Context, in *RequestPasswordResetRequest, opts ...grpc.CallOption) (*RequestPasswordResetResponse, error)
	PerformPasswordReset(ctx context.Context, in *PerformPasswordResetRequest, opts ...grpc.CallOption) (*PerformPasswordResetResponse, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc: cc}
}

func (c *accountServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error) {
	return rpcjson.Invoke[CreateUserResponse](ctx, c.cc, CreateUserMethod, in, opts...)
}

func (c *accountServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return rpcjson.Invoke[LoginResponse](ctx, c.cc, LoginMethod, in, opts...)
}

func (c *accountServiceClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UpdateUserResponse, error) {
	return rpcjson.Invoke[UpdateUserResponse](ctx, c.cc, UpdateUserMethod, in, opts...)
}

func (c *accountServiceClient) RequestPasswordReset(ctx context.Context, in *RequestPasswordResetRequest, opts ...grpc.CallOption) (*RequestPasswordResetResponse, error) {
	return rpcjson.Invoke[RequestPasswordResetResponse](ctx, c.cc, RequestPasswordResetMethod, in, opts...)
}

func (c *accountServiceClient) PerformPasswordReset(ctx context.Context, in *PerformPasswordResetRequest, opts ...grpc.CallOption) (*PerformPasswordResetResponse, error) {
	return rpcjson.Invoke[PerformPasswordResetResponse](ctx, c.cc, PerformPasswordResetMethod, in, opts...)
}
