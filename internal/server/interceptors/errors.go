package interceptors

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-service/internal/apperr"
	"account-service/internal/logging"
)

// InternalMessage is the only message callers see for unexpected failures.
const InternalMessage = "Internal server error"

const errorDomain = "account-service"

const (
	canceledMessage = "Request canceled"
	deadlineMessage = "Request timed out"
)

// ErrorsUnary returns a unary server interceptor that converts handler errors into gRPC statuses.
// An apperr.Error keeps its message verbatim and its details travel as an ErrorInfo; an existing
// status passes through; anything else is logged and answered Internal.
func ErrorsUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	log = logging.OrDefault(log)
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, ToStatus(ctx, log, info.FullMethod, err)
	}
}

// ToStatus maps err to a gRPC status error. See ErrorsUnary.
func ToStatus(ctx context.Context, log *slog.Logger, method string, err error) error {
	if e, ok := apperr.As(err); ok {
		st := status.New(e.Kind.Code(), e.Message)
		if len(e.Details) > 0 {
			info := &errdetails.ErrorInfo{
				Reason:   strings.ToUpper(e.Kind.String()),
				Domain:   errorDomain,
				Metadata: map[string]string{"values": strings.Join(e.Details, ",")},
			}
			if withDetails, derr := st.WithDetails(info); derr == nil {
				st = withDetails
			}
		}
		return st.Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, canceledMessage)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, deadlineMessage)
	}
	log.ErrorContext(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, InternalMessage)
}
