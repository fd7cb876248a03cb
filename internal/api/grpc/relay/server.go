package relay

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	SendAlert(ctx context.Context, alert *domain.Alert) (*domain.Alert, error)
	GetLastAlert(ctx context.Context) *domain.Alert
}

// Server implements the PanicRelay gRPC API.
type Server struct {
	// service provides the business logic for relay operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// SendAlert accepts an alert, delivers it and returns the stored copy.
func (s *Server) SendAlert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	alert, err := AlertFromProto(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if alert.Contact == "" {
		return nil, status.Error(codes.InvalidArgument, "contact is required")
	}

	stored, err := s.service.SendAlert(ctx, alert)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		return nil, status.Error(codes.Internal, "unable to persist alert")
	}

	return toResponse(stored)
}

// GetLastAlert returns the most recent alert, or NotFound before the first one.
func (s *Server) GetLastAlert(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	alert := s.service.GetLastAlert(ctx)
	if alert == nil {
		return nil, status.Error(codes.NotFound, "no alert received yet")
	}

	return toResponse(alert)
}

// toResponse converts an alert into a response payload.
func toResponse(alert *domain.Alert) (*structpb.Struct, error) {
	payload, err := AlertToProto(alert)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return payload, nil
}
