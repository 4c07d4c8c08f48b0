package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/apiv1"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// eventBuffer is the per-subscriber queue length. Events beyond it are
// dropped for that subscriber.
const eventBuffer = 16

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      apiv1.PlantGuardClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	identity     *models.Identity

	refreshMu sync.Mutex

	subsMu   sync.Mutex
	subs     map[int]chan models.AuthEvent
	nextSub  int
	eventSeq uint64
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	return &models.Session{Identity: s.identity}
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	accessToken, _ := s.tokens()

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	newToken, refreshErr := s.refresh(ctx, accessToken)
	if refreshErr != nil {
		return err
	}

	// tokens refreshed, retry with the new access token
	return invoker(withAccessToken(ctx, newToken), method, req, reply, cc, opts...)
}

// refresh exchanges the refresh token for a new pair. Concurrent callers that
// saw the same expired token share one exchange.
func (s *GRPCClient) refresh(ctx context.Context, expired string) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	accessToken, refreshToken := s.tokens()
	if accessToken != "" && accessToken != expired {
		return accessToken, nil
	}
	if refreshToken == "" {
		return "", ErrUnauthorized
	}

	resp, err := s.client.RefreshToken(ctx, &apiv1.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			s.clearSession()
		}
		return "", err
	}

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.mu.Unlock()

	s.emit(models.AuthEvent{Kind: models.EventTokenRefreshed, Session: s.session()})
	return resp.AccessToken, nil
}

func (s *GRPCClient) clearSession() {
	s.mu.Lock()
	hadSession := s.accessToken != "" || s.identity != nil
	s.accessToken = ""
	s.refreshToken = ""
	s.identity = nil
	s.mu.Unlock()

	if hadSession {
		s.emit(models.AuthEvent{Kind: models.EventSignedOut})
	}
}

func (s *GRPCClient) emit(ev models.AuthEvent) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.eventSeq++
	ev.Seq = s.eventSeq
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// EventSeq returns the sequence number of the last emitted auth event.
func (s *GRPCClient) EventSeq() uint64 {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	return s.eventSeq
}

// Subscribe registers a listener for auth-state changes. The first event is
// always INITIAL_SESSION with the current session, stamped with the sequence
// of the last emitted event. The returned func unsubscribes and closes the
// channel.
func (s *GRPCClient) Subscribe() (<-chan models.AuthEvent, func()) {
	ch := make(chan models.AuthEvent, eventBuffer)

	s.subsMu.Lock()
	ch <- models.AuthEvent{Kind: models.EventInitialSession, Session: s.session(), Seq: s.eventSeq}
	if s.subs == nil {
		s.subs = make(map[int]chan models.AuthEvent)
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
			s.subsMu.Unlock()
		})
	}
}

// NewGRPCClient creates a client for endpointURL. A positive timeout bounds
// every call.
func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = apiv1.NewPlantGuardClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	s.subsMu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.subsMu.Unlock()

	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SignUp registers an account. The bool reports that the account exists but
// no session was issued; SignUp never signs in.
func (s *GRPCClient) SignUp(ctx context.Context, email, password string) (*models.Identity, bool, error) {
	resp, err := s.client.SignUp(ctx, &apiv1.SignUpRequest{Email: email, Password: password})
	if err != nil {
		return nil, false, s.mapError(err)
	}
	return identityFromAPI(resp.User), resp.ConfirmationPending, nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := s.client.SignIn(ctx, &apiv1.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	identity := identityFromAPI(resp.User)

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.identity = identity
	s.mu.Unlock()

	sess := &models.Session{Identity: identity}
	s.emit(models.AuthEvent{Kind: models.EventSignedIn, Session: sess})
	return sess, nil
}

// SignOut revokes the session on the server. On failure the local session is
// kept.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	accessToken, refreshToken := s.tokens()
	if accessToken == "" {
		s.clearSession()
		return nil
	}

	if _, err := s.client.SignOut(ctx, &apiv1.SignOutRequest{RefreshToken: refreshToken}); err != nil {
		return s.mapError(err)
	}

	s.clearSession()
	return nil
}

// GetSession returns the current session, confirming it with the server. It
// returns nil without error when nobody is signed in or the server no longer
// accepts the session.
func (s *GRPCClient) GetSession(ctx context.Context) (*models.Session, error) {
	if accessToken, _ := s.tokens(); accessToken == "" {
		return nil, nil
	}

	resp, err := s.client.GetUser(ctx, &apiv1.GetUserRequest{})
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			s.clearSession()
			return nil, nil
		}
		return nil, s.mapError(err)
	}

	identity := identityFromAPI(resp.User)
	if identity == nil {
		s.clearSession()
		return nil, nil
	}

	s.mu.Lock()
	changed := s.identity == nil || s.identity.ID != identity.ID || s.identity.Email != identity.Email
	s.identity = identity
	s.mu.Unlock()

	sess := &models.Session{Identity: identity}
	if changed {
		s.emit(models.AuthEvent{Kind: models.EventUserUpdated, Session: sess})
	}
	return sess, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &apiv1.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) ListSpecies(ctx context.Context) ([]*models.PlantSpecies, error) {
	resp, err := s.client.ListSpecies(ctx, &apiv1.ListSpeciesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return speciesFromAPI(resp.Species), nil
}

func (s *GRPCClient) ListDiseases(ctx context.Context) ([]*models.Disease, error) {
	resp, err := s.client.ListDiseases(ctx, &apiv1.ListDiseasesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return diseasesFromAPI(resp.Diseases), nil
}

func (s *GRPCClient) InsertAnalysis(ctx context.Context, a *models.Analysis) (*models.Analysis, error) {
	in, err := analysisToAPI(a)
	if err != nil {
		return nil, fmt.Errorf("segmentation data: %w", err)
	}

	resp, err := s.client.InsertAnalysis(ctx, &apiv1.InsertAnalysisRequest{Analysis: in})
	if err != nil {
		return nil, s.mapError(err)
	}
	return analysisFromAPI(resp.Analysis)
}

// ListAnalyses returns the records of ownerID, newest first.
func (s *GRPCClient) ListAnalyses(ctx context.Context, ownerID string) ([]*models.Analysis, error) {
	resp, err := s.client.ListAnalyses(ctx, &apiv1.ListAnalysesRequest{UserID: ownerID})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]*models.Analysis, 0, len(resp.Analyses))
	for _, a := range resp.Analyses {
		m, err := analysisFromAPI(a)
		if err != nil {
			return nil, fmt.Errorf("analysis %s: %w", a.ID, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// DeleteAnalysis removes record id if it belongs to ownerID and reports the
// number of removed rows.
func (s *GRPCClient) DeleteAnalysis(ctx context.Context, id, ownerID string) (int64, error) {
	resp, err := s.client.DeleteAnalysis(ctx, &apiv1.DeleteAnalysisRequest{ID: id, UserID: ownerID})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Deleted, nil
}

// RequestImageUpload returns a storage reference and a presigned PUT URL.
// ErrNotSupported means the server has no object storage.
func (s *GRPCClient) RequestImageUpload(ctx context.Context, contentType string) (string, string, error) {
	resp, err := s.client.RequestImageUpload(ctx, &apiv1.RequestImageUploadRequest{ContentType: contentType})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return &RemoteError{Kind: ErrUnauthorized, Message: st.Message()}
	case codes.PermissionDenied:
		return &RemoteError{Kind: ErrForbidden, Message: st.Message()}
	case codes.AlreadyExists:
		return &RemoteError{Kind: ErrAlreadyExists, Message: st.Message()}
	case codes.InvalidArgument:
		return &RemoteError{Kind: ErrInvalidArgument, Message: st.Message()}
	case codes.FailedPrecondition:
		return &RemoteError{Kind: ErrNotSupported, Message: st.Message()}
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
