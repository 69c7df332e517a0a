// Package net provides helpers for request-scoped context values
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyDeviceID ctxKey = "device_id"

// WithRequest annotates context with the correlation id so chi middleware
// helpers can retrieve it downstream
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithDevice annotates context with the calling device id
func WithDevice(ctx context.Context, deviceID string) context.Context {
	if deviceID != "" {
		ctx = context.WithValue(ctx, keyDeviceID, deviceID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// DeviceID returns the device id on the context if present
func DeviceID(ctx context.Context) string {
	if v, ok := ctx.Value(keyDeviceID).(string); ok {
		return v
	}
	return ""
}
