package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/plantguard/internal/apiv1"
	"github.com/dmitrijs2005/plantguard/internal/common"
	"github.com/dmitrijs2005/plantguard/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	msgInvalidCredentials = "Invalid login credentials"
	msgUserExists         = "User already registered"
	msgInternal           = "internal error"
)

// serviceError translates service errors into gRPC statuses. Validation
// messages are passed through to the caller.
func (s *GRPCServer) serviceError(ctx context.Context, op string, err error) error {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Msg)
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, services.ErrStorageDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	s.logger.Error(ctx, "request failed", "op", op, "error", err)
	return status.Error(codes.Internal, msgInternal)
}

// requireOwner returns the caller's user id and refuses a request that names
// a different owner.
func requireOwner(ctx context.Context, requested string) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	if requested != "" && requested != userID {
		return "", status.Error(codes.PermissionDenied, "forbidden")
	}
	return userID, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *apiv1.SignUpRequest) (*apiv1.SignUpResponse, error) {
	s.logger.Info(ctx, "Registration request")

	user, err := s.users.SignUp(ctx, req.Email, req.Password, req.Metadata)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, status.Error(codes.AlreadyExists, msgUserExists)
		}
		return nil, s.serviceError(ctx, "sign_up", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &apiv1.SignUpResponse{User: userToAPI(user)}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *apiv1.SignInRequest) (*apiv1.SignInResponse, error) {
	user, tokens, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, msgInvalidCredentials)
		}
		return nil, s.serviceError(ctx, "sign_in", err)
	}

	return &apiv1.SignInResponse{
		User:         userToAPI(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *apiv1.RefreshTokenRequest) (*apiv1.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			return nil, status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
		}
		return nil, s.serviceError(ctx, "refresh_token", err)
	}

	return &apiv1.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, _ *apiv1.SignOutRequest) (*apiv1.SignOutResponse, error) {
	userID, err := requireOwner(ctx, "")
	if err != nil {
		return nil, err
	}
	if err := s.users.SignOut(ctx, userID); err != nil {
		return nil, s.serviceError(ctx, "sign_out", err)
	}
	return &apiv1.SignOutResponse{}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, _ *apiv1.GetUserRequest) (*apiv1.GetUserResponse, error) {
	userID, err := requireOwner(ctx, "")
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.Unauthenticated, "user not found")
		}
		return nil, s.serviceError(ctx, "get_user", err)
	}
	return &apiv1.GetUserResponse{User: userToAPI(user)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *apiv1.PingRequest) (*apiv1.PingResponse, error) {
	return &apiv1.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListSpecies(ctx context.Context, _ *apiv1.ListSpeciesRequest) (*apiv1.ListSpeciesResponse, error) {
	species, err := s.catalog.ListSpecies(ctx)
	if err != nil {
		return nil, s.serviceError(ctx, "list_species", err)
	}
	return &apiv1.ListSpeciesResponse{Species: speciesToAPI(species)}, nil
}

func (s *GRPCServer) ListDiseases(ctx context.Context, _ *apiv1.ListDiseasesRequest) (*apiv1.ListDiseasesResponse, error) {
	diseases, err := s.catalog.ListDiseases(ctx)
	if err != nil {
		return nil, s.serviceError(ctx, "list_diseases", err)
	}
	return &apiv1.ListDiseasesResponse{Diseases: diseasesToAPI(diseases)}, nil
}

func (s *GRPCServer) InsertAnalysis(ctx context.Context, req *apiv1.InsertAnalysisRequest) (*apiv1.InsertAnalysisResponse, error) {
	if req.Analysis == nil {
		return nil, status.Error(codes.InvalidArgument, "analysis is required")
	}
	userID, err := requireOwner(ctx, req.Analysis.UserID)
	if err != nil {
		return nil, err
	}

	created, err := s.analyses.Insert(ctx, userID, analysisFromAPI(req.Analysis))
	if err != nil {
		return nil, s.serviceError(ctx, "insert_analysis", err)
	}
	if s.metrics != nil {
		s.metrics.AnalysisStored(string(created.Severity))
	}

	return &apiv1.InsertAnalysisResponse{Analysis: analysisToAPI(created)}, nil
}

func (s *GRPCServer) ListAnalyses(ctx context.Context, req *apiv1.ListAnalysesRequest) (*apiv1.ListAnalysesResponse, error) {
	userID, err := requireOwner(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	items, err := s.analyses.List(ctx, userID)
	if err != nil {
		return nil, s.serviceError(ctx, "list_analyses", err)
	}

	out := make([]*apiv1.Analysis, 0, len(items))
	for _, a := range items {
		out = append(out, analysisToAPI(a))
	}
	return &apiv1.ListAnalysesResponse{Analyses: out}, nil
}

func (s *GRPCServer) DeleteAnalysis(ctx context.Context, req *apiv1.DeleteAnalysisRequest) (*apiv1.DeleteAnalysisResponse, error) {
	userID, err := requireOwner(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	n, err := s.analyses.Delete(ctx, userID, req.ID)
	if err != nil {
		return nil, s.serviceError(ctx, "delete_analysis", err)
	}
	return &apiv1.DeleteAnalysisResponse{Deleted: n}, nil
}

func (s *GRPCServer) RequestImageUpload(ctx context.Context, req *apiv1.RequestImageUploadRequest) (*apiv1.RequestImageUploadResponse, error) {
	userID, err := requireOwner(ctx, "")
	if err != nil {
		return nil, err
	}

	ref, url, err := s.analyses.RequestImageUpload(ctx, userID, req.ContentType)
	if err != nil {
		return nil, s.serviceError(ctx, "request_image_upload", err)
	}
	return &apiv1.RequestImageUploadResponse{Key: ref, URL: url}, nil
}
