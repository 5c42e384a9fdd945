package interceptors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-service/internal/apperr"
	"account-service/internal/logging"
)

func runErrors(t *testing.T, handlerErr error) (error, string) {
	t.Helper()
	var buf bytes.Buffer
	interceptor := ErrorsUnary(logging.NewWithWriter(&buf, "debug", "text"))
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test.Service/M"},
		func(ctx context.Context, req interface{}) (interface{}, error) { return nil, handlerErr })
	return err, buf.String()
}

func TestErrorsUnary_AppErrors(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{apperr.Invalid("Email is required."), codes.InvalidArgument},
		{apperr.NotFound("Credentials not found."), codes.NotFound},
		{apperr.Conflict("Invalid Email."), codes.AlreadyExists},
		{apperr.Unauthorized("Credentials doesn't match."), codes.Unauthenticated},
		{fmt.Errorf("wrapped: %w", apperr.NotFound("User not found.")), codes.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			err, _ := runErrors(t, tt.err)
			st, _ := status.FromError(err)
			e, _ := apperr.As(tt.err)
			if st.Code() != tt.code || st.Message() != e.Message {
				t.Errorf("status = %v %q, want %v %q", st.Code(), st.Message(), tt.code, e.Message)
			}
		})
	}
}

func TestErrorsUnary_DetailsAttached(t *testing.T) {
	err, _ := runErrors(t, apperr.Conflict("Invalid theme Id(s).").WithDetails("x", "y"))
	st, _ := status.FromError(err)
	if st.Code() != codes.AlreadyExists {
		t.Fatalf("code = %v", st.Code())
	}
	var found bool
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			found = true
			if info.GetMetadata()["values"] != "x,y" || info.GetReason() != "CONFLICT" {
				t.Errorf("info = %v", info)
			}
		}
	}
	if !found {
		t.Error("ErrorInfo detail missing")
	}
}

func TestErrorsUnary_StatusPassesThrough(t *testing.T) {
	in := status.Error(codes.PermissionDenied, "not yours")
	err, logs := runErrors(t, in)
	if status.Code(err) != codes.PermissionDenied || status.Convert(err).Message() != "not yours" {
		t.Errorf("err = %v", err)
	}
	if logs != "" {
		t.Errorf("unexpected log output: %s", logs)
	}
}

func TestErrorsUnary_UnknownErrorIsInternal(t *testing.T) {
	err, logs := runErrors(t, errors.New("pq: connection reset"))
	st, _ := status.FromError(err)
	if st.Code() != codes.Internal || st.Message() != InternalMessage {
		t.Errorf("status = %v %q", st.Code(), st.Message())
	}
	if strings.Contains(st.Message(), "connection reset") {
		t.Error("internal detail leaked to caller")
	}
	if !strings.Contains(logs, "connection reset") {
		t.Errorf("internal error not logged: %q", logs)
	}
}

func TestErrorsUnary_ContextErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"canceled", fmt.Errorf("hash password: %w", context.Canceled), codes.Canceled, "Request canceled"},
		{"deadline", fmt.Errorf("get user by email: %w", context.DeadlineExceeded), codes.DeadlineExceeded, "Request timed out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, _ := runErrors(t, tt.err)
			st, _ := status.FromError(err)
			if st.Code() != tt.code || st.Message() != tt.msg {
				t.Errorf("status = %v %q, want %v %q", st.Code(), st.Message(), tt.code, tt.msg)
			}
			if strings.Contains(st.Message(), "password") || strings.Contains(st.Message(), "email") {
				t.Error("wrapped error text leaked to caller")
			}
		})
	}
}

func TestErrorsUnary_Success(t *testing.T) {
	interceptor := ErrorsUnary(nil)
	resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test.Service/M"},
		func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil })
	if err != nil || resp != "ok" {
		t.Errorf("resp = %v, err = %v", resp, err)
	}
}
