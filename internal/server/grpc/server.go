// Package grpc implements the PlantGuard gRPC API on top of the server
// services.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/apiv1"
	"github.com/dmitrijs2005/plantguard/internal/logging"
	"github.com/dmitrijs2005/plantguard/internal/server/metrics"
	"github.com/dmitrijs2005/plantguard/internal/server/models"
	"github.com/dmitrijs2005/plantguard/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type userService interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SignOut(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type catalogService interface {
	ListSpecies(ctx context.Context) ([]*models.PlantSpecies, error)
	ListDiseases(ctx context.Context) ([]*models.Disease, error)
}

type analysisService interface {
	Insert(ctx context.Context, userID string, a *models.Analysis) (*models.Analysis, error)
	List(ctx context.Context, userID string) ([]*models.Analysis, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
	RequestImageUpload(ctx context.Context, userID, contentType string) (string, string, error)
}

type GRPCServer struct {
	apiv1.UnimplementedPlantGuardServer
	address   string
	users     userService
	catalog   catalogService
	analyses  analysisService
	metrics   *metrics.RPCMetrics
	logger    logging.Logger
	jwtSecret []byte
	now       func() time.Time
}

// NewGRPCServer wires the services into a server listening on address. m may
// be nil, which disables request metrics.
func NewGRPCServer(address string, l logging.Logger, us userService, cs catalogService, as analysisService,
	m *metrics.RPCMetrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		catalog:   cs,
		analyses:  as,
		metrics:   m,
		jwtSecret: []byte(secretKey),
		now:       time.Now,
	}
}

func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor))
	apiv1.RegisterPlantGuardServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(apiv1.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv, hs
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv, hs := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}
