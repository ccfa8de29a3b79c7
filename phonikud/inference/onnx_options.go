package inference

import "strings"

// ONNXOptions configures the ONNX Runtime session.
type ONNXOptions struct {
	// ExecutionProvider is "cpu" (default), "cuda", "tensorrt", "coreml" or "dml".
	ExecutionProvider string
	// DeviceID is used by DirectML.
	DeviceID int
	// EPOptions are provider-specific key/value settings passed to the selected EP.
	EPOptions map[string]string
	// IntraOpThreads and InterOpThreads size the ORT thread pools; 0 lets ORT decide.
	IntraOpThreads int
	InterOpThreads int
	// SharedLibraryPath points at libonnxruntime. Empty falls back to
	// $ONNXRUNTIME_SHARED_LIBRARY_PATH and then the ORT default.
	SharedLibraryPath string
}

// DefaultONNXOptions returns CPU execution with four intra-op threads.
func DefaultONNXOptions() ONNXOptions {
	return ONNXOptions{ExecutionProvider: "cpu", IntraOpThreads: 4}
}

func (o ONNXOptions) executionProvider() string {
	ep := strings.ToLower(strings.TrimSpace(o.ExecutionProvider))
	if ep == "" {
		return "cpu"
	}
	return ep
}
