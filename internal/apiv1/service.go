// Package apiv1 defines the PlantGuard gRPC service: its messages, the
// service descriptor used by the server and the client stub. Messages are
// plain Go structs carried by a JSON codec registered under CodecName.
package apiv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "plantguard.v1.PlantGuard"

// Method names.
const (
	MethodSignUp             = "SignUp"
	MethodSignIn             = "SignIn"
	MethodRefreshToken       = "RefreshToken"
	MethodSignOut            = "SignOut"
	MethodGetUser            = "GetUser"
	MethodPing               = "Ping"
	MethodListSpecies        = "ListSpecies"
	MethodListDiseases       = "ListDiseases"
	MethodInsertAnalysis     = "InsertAnalysis"
	MethodListAnalyses       = "ListAnalyses"
	MethodDeleteAnalysis     = "DeleteAnalysis"
	MethodRequestImageUpload = "RequestImageUpload"
)

// FullMethod returns the "/service/method" path gRPC uses for name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// PlantGuardServer is the server API of the PlantGuard service.
type PlantGuardServer interface {
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListSpecies(context.Context, *ListSpeciesRequest) (*ListSpeciesResponse, error)
	ListDiseases(context.Context, *ListDiseasesRequest) (*ListDiseasesResponse, error)
	InsertAnalysis(context.Context, *InsertAnalysisRequest) (*InsertAnalysisResponse, error)
	ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error)
	DeleteAnalysis(context.Context, *DeleteAnalysisRequest) (*DeleteAnalysisResponse, error)
	RequestImageUpload(context.Context, *RequestImageUploadRequest) (*RequestImageUploadResponse, error)
}

// UnimplementedPlantGuardServer can be embedded to satisfy PlantGuardServer
// while only some methods are implemented.
type UnimplementedPlantGuardServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedPlantGuardServer) SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error) {
	return nil, unimplemented(MethodSignUp)
}
func (UnimplementedPlantGuardServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, unimplemented(MethodSignIn)
}
func (UnimplementedPlantGuardServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented(MethodRefreshToken)
}
func (UnimplementedPlantGuardServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, unimplemented(MethodSignOut)
}
func (UnimplementedPlantGuardServer) GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error) {
	return nil, unimplemented(MethodGetUser)
}
func (UnimplementedPlantGuardServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedPlantGuardServer) ListSpecies(context.Context, *ListSpeciesRequest) (*ListSpeciesResponse, error) {
	return nil, unimplemented(MethodListSpecies)
}
func (UnimplementedPlantGuardServer) ListDiseases(context.Context, *ListDiseasesRequest) (*ListDiseasesResponse, error) {
	return nil, unimplemented(MethodListDiseases)
}
func (UnimplementedPlantGuardServer) InsertAnalysis(context.Context, *InsertAnalysisRequest) (*InsertAnalysisResponse, error) {
	return nil, unimplemented(MethodInsertAnalysis)
}
func (UnimplementedPlantGuardServer) ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error) {
	return nil, unimplemented(MethodListAnalyses)
}
func (UnimplementedPlantGuardServer) DeleteAnalysis(context.Context, *DeleteAnalysisRequest) (*DeleteAnalysisResponse, error) {
	return nil, unimplemented(MethodDeleteAnalysis)
}
func (UnimplementedPlantGuardServer) RequestImageUpload(context.Context, *RequestImageUploadRequest) (*RequestImageUploadResponse, error) {
	return nil, unimplemented(MethodRequestImageUpload)
}

// unary builds the method descriptor for one RPC, decoding into *Req and
// routing through the server's interceptor chain.
func unary[Req any, Resp any](name string, call func(PlantGuardServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PlantGuardServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PlantGuardServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for the PlantGuard service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlantGuardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodSignUp, PlantGuardServer.SignUp),
		unary(MethodSignIn, PlantGuardServer.SignIn),
		unary(MethodRefreshToken, PlantGuardServer.RefreshToken),
		unary(MethodSignOut, PlantGuardServer.SignOut),
		unary(MethodGetUser, PlantGuardServer.GetUser),
		unary(MethodPing, PlantGuardServer.Ping),
		unary(MethodListSpecies, PlantGuardServer.ListSpecies),
		unary(MethodListDiseases, PlantGuardServer.ListDiseases),
		unary(MethodInsertAnalysis, PlantGuardServer.InsertAnalysis),
		unary(MethodListAnalyses, PlantGuardServer.ListAnalyses),
		unary(MethodDeleteAnalysis, PlantGuardServer.DeleteAnalysis),
		unary(MethodRequestImageUpload, PlantGuardServer.RequestImageUpload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "plantguard/v1",
}

func RegisterPlantGuardServer(s grpc.ServiceRegistrar, srv PlantGuardServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// PlantGuardClient is the client API of the PlantGuard service.
type PlantGuardClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	ListSpecies(ctx context.Context, in *ListSpeciesRequest, opts ...grpc.CallOption) (*ListSpeciesResponse, error)
	ListDiseases(ctx context.Context, in *ListDiseasesRequest, opts ...grpc.CallOption) (*ListDiseasesResponse, error)
	InsertAnalysis(ctx context.Context, in *InsertAnalysisRequest, opts ...grpc.CallOption) (*InsertAnalysisResponse, error)
	ListAnalyses(ctx context.Context, in *ListAnalysesRequest, opts ...grpc.CallOption) (*ListAnalysesResponse, error)
	DeleteAnalysis(ctx context.Context, in *DeleteAnalysisRequest, opts ...grpc.CallOption) (*DeleteAnalysisResponse, error)
	RequestImageUpload(ctx context.Context, in *RequestImageUploadRequest, opts ...grpc.CallOption) (*RequestImageUploadResponse, error)
}

type plantGuardClient struct {
	cc grpc.ClientConnInterface
}

func NewPlantGuardClient(cc grpc.ClientConnInterface) PlantGuardClient {
	return &plantGuardClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *plantGuardClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	return invoke[SignUpResponse](ctx, c.cc, MethodSignUp, in, opts)
}

func (c *plantGuardClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, MethodSignIn, in, opts)
}

func (c *plantGuardClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *plantGuardClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, MethodSignOut, in, opts)
}

func (c *plantGuardClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	return invoke[GetUserResponse](ctx, c.cc, MethodGetUser, in, opts)
}

func (c *plantGuardClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *plantGuardClient) ListSpecies(ctx context.Context, in *ListSpeciesRequest, opts ...grpc.CallOption) (*ListSpeciesResponse, error) {
	return invoke[ListSpeciesResponse](ctx, c.cc, MethodListSpecies, in, opts)
}

func (c *plantGuardClient) ListDiseases(ctx context.Context, in *ListDiseasesRequest, opts ...grpc.CallOption) (*ListDiseasesResponse, error) {
	return invoke[ListDiseasesResponse](ctx, c.cc, MethodListDiseases, in, opts)
}

func (c *plantGuardClient) InsertAnalysis(ctx context.Context, in *InsertAnalysisRequest, opts ...grpc.CallOption) (*InsertAnalysisResponse, error) {
	return invoke[InsertAnalysisResponse](ctx, c.cc, MethodInsertAnalysis, in, opts)
}

func (c *plantGuardClient) ListAnalyses(ctx context.Context, in *ListAnalysesRequest, opts ...grpc.CallOption) (*ListAnalysesResponse, error) {
	return invoke[ListAnalysesResponse](ctx, c.cc, MethodListAnalyses, in, opts)
}

func (c *plantGuardClient) DeleteAnalysis(ctx context.Context, in *DeleteAnalysisRequest, opts ...grpc.CallOption) (*DeleteAnalysisResponse, error) {
	return invoke[DeleteAnalysisResponse](ctx, c.cc, MethodDeleteAnalysis, in, opts)
}

func (c *plantGuardClient) RequestImageUpload(ctx context.Context, in *RequestImageUploadRequest, opts ...grpc.CallOption) (*RequestImageUploadResponse, error) {
	return invoke[RequestImageUploadResponse](ctx, c.cc, MethodRequestImageUpload, in, opts)
}
