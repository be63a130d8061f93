package grpc

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/sirupsen/logrus"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// APIKeyUnaryInterceptor rejects every call whose x-api-key metadata does not
// match apiKey.
func APIKeyUnaryInterceptor(apiKey string) gogrpc.UnaryServerInterceptor {
	expected := []byte(strings.TrimSpace(apiKey))
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		if err := validateIncomingAPIKey(ctx, expected); err != nil {
			logrus.WithField("method", info.FullMethod).Debug("Rejected gRPC call without valid api key")
			return nil, err
		}
		return handler(ctx, req)
	}
}

func APIKeyStreamInterceptor(apiKey string) gogrpc.StreamServerInterceptor {
	expected := []byte(strings.TrimSpace(apiKey))
	return func(srv any, ss gogrpc.ServerStream, _ *gogrpc.StreamServerInfo, handler gogrpc.StreamHandler) error {
		if err := validateIncomingAPIKey(ss.Context(), expected); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func validateIncomingAPIKey(ctx context.Context, expected []byte) error {
	apiKey := incomingAPIKeyFromMetadata(ctx)
	if apiKey == "" || len(expected) == 0 {
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
	if subtle.ConstantTimeCompare([]byte(apiKey), expected) != 1 {
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
	return nil
}

func incomingAPIKeyFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("x-api-key")
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
