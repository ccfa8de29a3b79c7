//go:build !onnx
// +build !onnx

package inference

// ShutdownRuntime is a no-op without ONNX support.
func ShutdownRuntime() error { return nil }
