package operator

import "context"

type contextKey string

const deviceKey contextKey = "operator_device"

// DeviceFromCtx returns the device label attached by Identify.
func DeviceFromCtx(ctx context.Context) (string, bool) {
	label, ok := ctx.Value(deviceKey).(string)
	return label, ok && label != ""
}

// WithDevice returns a copy of ctx carrying label.
func WithDevice(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, deviceKey, label)
}
