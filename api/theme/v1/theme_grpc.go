package themev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-service/api/rpcjson"
)

const ServiceName = "theme.v1.ThemeService"

// Full method names.
const (
	ListThemesMethod          = "/theme.v1.ThemeService/ListThemes"
	SaveThemeSelectionsMethod = "/theme.v1.ThemeService/SaveThemeSelections"
	GetThemeSelectionsMethod  = "/theme.v1.ThemeService/GetThemeSelections"
	GetSuggestionsMethod      = "/theme.v1.ThemeService/GetSuggestions"
	GetPageSuggestionsMethod  = "/theme.v1.ThemeService/GetPageSuggestions"
)

type ThemeServiceServer interface {
	ListThemes(context.Context, *ListThemesRequest) (*ListThemesResponse, error)
	SaveThemeSelections(context.Context, *SaveThemeSelectionsRequest) (*SaveThemeSelectionsResponse, error)
	GetThemeSelections(context.Context, *GetThemeSelectionsRequest) (*GetThemeSelectionsResponse, error)
	GetSuggestions(context.Context, *GetSuggestionsRequest) (*GetSuggestionsResponse, error)
	GetPageSuggestions(context.Context, *GetPageSuggestionsRequest) (*GetPageSuggestionsResponse, error)
}

// UnimplementedThemeServiceServer answers every method with codes.Unimplemented. Embed it for forward compatibility.
type UnimplementedThemeServiceServer struct{}

func (UnimplementedThemeServiceServer) ListThemes(context.Context, *ListThemesRequest) (*ListThemesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListThemes not implemented")
}

func (UnimplementedThemeServiceServer) SaveThemeSelections(context.Context, *SaveThemeSelectionsRequest) (*SaveThemeSelectionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveThemeSelections not implemented")
}

func (UnimplementedThemeServiceServer) GetThemeSelections(context.Context, *GetThemeSelectionsRequest) (*GetThemeSelectionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetThemeSelections not implemented")
}

func (UnimplementedThemeServiceServer) GetSuggestions(context.Context, *GetSuggestionsRequest) (*GetSuggestionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSuggestions not implemented")
}

func (UnimplementedThemeServiceServer) GetPageSuggestions(context.Context, *GetPageSuggestionsRequest) (*GetPageSuggestionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPageSuggestions not implemented")
}

var ThemeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ThemeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListThemes",
			Handler: rpcjson.Unary(ListThemesMethod, func(srv any, ctx context.Context, in *ListThemesRequest) (*ListThemesResponse, error) {
				return srv.(ThemeServiceServer).ListThemes(ctx, in)
			}),
		},
		{
			MethodName: "SaveThemeSelections",
			Handler: rpcjson.Unary(SaveThemeSelectionsMethod, func(srv any, ctx context.Context, in *SaveThemeSelectionsRequest) (*SaveThemeSelectionsResponse, error) {
				return srv.(ThemeServiceServer).SaveThemeSelections(ctx, in)
			}),
		},
		{
			MethodName: "GetThemeSelections",
			Handler: rpcjson.Unary(GetThemeSelectionsMethod, func(srv any, ctx context.Context, in *GetThemeSelectionsRequest) (*GetThemeSelectionsResponse, error) {
				return srv.(ThemeServiceServer).GetThemeSelections(ctx, in)
			}),
		},
		{
			MethodName: "GetSuggestions",
			Handler: rpcjson.Unary(GetSuggestionsMethod, func(srv any, ctx context.Context, in *GetSuggestionsRequest) (*GetSuggestionsResponse, error) {
				return srv.(ThemeServiceServer).GetSuggestions(ctx, in)
			}),
		},
		{
			MethodName: "GetPageSuggestions",
			Handler: rpcjson.Unary(GetPageSuggestionsMethod, func(srv any, ctx context.Context, in *GetPageSuggestionsRequest) (*GetPageSuggestionsResponse, error) {
				return srv.(ThemeServiceServer).GetPageSuggestions(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "theme/v1",
}

func RegisterThemeServiceServer(s grpc.ServiceRegistrar, srv ThemeServiceServer) {
	s.RegisterService(&ThemeServiceDesc, srv)
}

type ThemeServiceClient interface {
	ListThemes(ctx context.Context, in *ListThemesRequest, opts ...grpc.CallOption) (*ListThemesResponse, error)
	SaveThemeSelections(ctx context.Context, in *SaveThemeSelectionsRequest, opts ...grpc.CallOption) (*SaveThemeSelectionsResponse, error)
	GetThemeSelections(ctx context.Context, in *GetThemeSelectionsRequest, opts ...grpc.CallOption) (*GetThemeSelectionsResponse, error)
	GetSuggestions(ctx context.Context, in *GetSuggestionsRequest, opts ...grpc.CallOption) (*GetSuggestionsResponse, error)
	GetPageSuggestions(ctx context.Context, in *GetPageSuggestionsRequest, opts ...grpc.CallOption) (*GetPageSuggestionsResponse, error)
}

type themeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewThemeServiceClient(cc grpc.ClientConnInterface) ThemeServiceClient {
	return &themeServiceClient{cc: cc}
}

func (c *themeServiceClient) ListThemes(ctx context.Context, in *ListThemesRequest, opts ...grpc.CallOption) (*ListThemesResponse, error) {
	return rpcjson.Invoke[ListThemesResponse](ctx, c.cc, ListThemesMethod, in, opts...)
}

func (c *themeServiceClient) SaveThemeSelections(ctx context.Context, in *SaveThemeSelectionsRequest, opts ...grpc.CallOption) (*SaveThemeSelectionsResponse, error) {
	return rpcjson.Invoke[SaveThemeSelectionsResponse](ctx, c.cc, SaveThemeSelectionsMethod, in, opts...)
}

func (c *themeServiceClient) GetThemeSelections(ctx context.Context, in *GetThemeSelectionsRequest, opts ...grpc.CallOption) (*GetThemeSelectionsResponse, error) {
	return rpcjson.Invoke[GetThemeSelectionsResponse](ctx, c.cc, GetThemeSelectionsMethod, in, opts...)
}

func (c *themeServiceClient) GetSuggestions(ctx context.Context, in *GetSuggestionsRequest, opts ...grpc.CallOption) (*GetSuggestionsResponse, error) {
	return rpcjson.Invoke[GetSuggestionsResponse](ctx, c.cc, GetSuggestionsMethod, in, opts...)
}

func (c *themeServiceClient) GetPageSuggestions(ctx context.Context, in *GetPageSuggestionsRequest, opts ...grpc.CallOption) (*GetPageSuggestionsResponse, error) {
	return rpcjson.Invoke[GetPageSuggestionsResponse](ctx, c.cc, GetPageSuggestionsMethod, in, opts...)
}
