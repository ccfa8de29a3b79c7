//go:build onnx
// +build onnx

package inference

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"gonum.org/v1/gonum/mat"
)

type inputKind int

const (
	inputIDs inputKind = iota
	inputMask
	inputTypeIDs
)

// ONNXProvider runs the model with ONNX Runtime. The session is not shared
// between goroutines: Infer holds a mutex for the duration of a run.
type ONNXProvider struct {
	modelPath   string
	mu          sync.Mutex
	session     *ort.DynamicAdvancedSession
	inputNames  []string
	inputKinds  []inputKind
	outputNames []string
}

// NewONNXProvider loads the model and opens a session. It fails if the model
// file is missing or its inputs and outputs do not look like the diacritizer.
func NewONNXProvider(modelPath string, opts ONNXOptions) (*ONNXProvider, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("onnx model path is required")
	}
	if fi, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	} else if fi.IsDir() {
		return nil, fmt.Errorf("model path %s is a directory", modelPath)
	}
	if err := initRuntime(opts.SharedLibraryPath); err != nil {
		return nil, err
	}

	// Probe IO
	ins, outs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("get IO info: %w", err)
	}
	var inputNames []string
	var kinds []inputKind
	for _, ii := range ins {
		n := strings.ToLower(ii.Name)
		switch {
		case strings.Contains(n, "input_ids") || n == "ids":
			kinds = append(kinds, inputIDs)
		case strings.Contains(n, "attention_mask") || n == "mask":
			kinds = append(kinds, inputMask)
		case strings.Contains(n, "token_type"):
			kinds = append(kinds, inputTypeIDs)
		default:
			return nil, fmt.Errorf("unrecognized model input %q", ii.Name)
		}
		inputNames = append(inputNames, ii.Name)
	}
	if len(inputNames) == 0 {
		return nil, fmt.Errorf("could not determine ONNX input names")
	}
	// Heads come in model order: nikud, shin, auxiliary
	var outputNames []string
	for _, oi := range outs {
		if oi.DataType == ort.TensorElementDataTypeFloat {
			outputNames = append(outputNames, oi.Name)
		}
	}
	if len(outputNames) < 3 {
		return nil, fmt.Errorf("model has %d float outputs, need 3", len(outputNames))
	}
	outputNames = outputNames[:3]

	so, err := sessionOptions(opts)
	if err != nil {
		return nil, err
	}
	s, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, so)
	_ = so.Destroy()
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &ONNXProvider{
		modelPath:   modelPath,
		session:     s,
		inputNames:  inputNames,
		inputKinds:  kinds,
		outputNames: outputNames,
	}, nil
}

func sessionOptions(opts ONNXOptions) (*ort.SessionOptions, error) {
	o, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	if err := o.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		_ = o.Destroy()
		return nil, fmt.Errorf("set optimization level: %w", err)
	}
	if err := o.SetIntraOpNumThreads(opts.IntraOpThreads); err != nil {
		_ = o.Destroy()
		return nil, fmt.Errorf("set intra-op threads: %w", err)
	}
	if err := o.SetInterOpNumThreads(opts.InterOpThreads); err != nil {
		_ = o.Destroy()
		return nil, fmt.Errorf("set inter-op threads: %w", err)
	}
	// A failing EP leaves the session on CPU.
	switch opts.executionProvider() {
	case "cuda":
		if cu, e := ort.NewCUDAProviderOptions(); e == nil {
			if len(opts.EPOptions) > 0 {
				_ = cu.Update(opts.EPOptions)
			}
			_ = o.AppendExecutionProviderCUDA(cu)
			_ = cu.Destroy()
		}
	case "tensorrt":
		if trt, e := ort.NewTensorRTProviderOptions(); e == nil {
			if len(opts.EPOptions) > 0 {
				_ = trt.Update(opts.EPOptions)
			}
			_ = o.AppendExecutionProviderTensorRT(trt)
			_ = trt.Destroy()
		}
	case "coreml":
		ep := opts.EPOptions
		if ep == nil {
			ep = map[string]string{}
		}
		_ = o.AppendExecutionProviderCoreMLV2(ep)
	case "dml":
		_ = o.AppendExecutionProviderDirectML(opts.DeviceID)
	}
	return o, nil
}

func (p *ONNXProvider) Infer(ctx context.Context, req Request) (*Outputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	seq := int64(req.SeqLen())
	shape := ort.NewShape(1, seq)

	inVals := make([]ort.Value, len(p.inputNames))
	for i, kind := range p.inputKinds {
		var data []int64
		switch kind {
		case inputIDs:
			data = req.InputIDs
		case inputMask:
			data = req.AttentionMask
		default:
			data = req.TokenTypeIDs
		}
		t, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("%s tensor: %w", p.inputNames[i], err)
		}
		defer t.Destroy()
		inVals[i] = t
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil, fmt.Errorf("onnx session closed")
	}
	// Run may allocate some outputs before failing.
	outs := make([]ort.Value, len(p.outputNames))
	defer releaseValues(outs)
	if err := p.session.Run(inVals, outs); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}

	heads := make([]*mat.Dense, len(outs))
	for i, v := range outs {
		t, ok := v.(*ort.Tensor[float32])
		if !ok {
			return nil, fmt.Errorf("output %s: unexpected output type", p.outputNames[i])
		}
		m, err := denseFromBatch(t.GetShape(), t.GetData())
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", p.outputNames[i], err)
		}
		if r, _ := m.Dims(); int64(r) != seq {
			return nil, fmt.Errorf("output %s: %d rows for %d tokens", p.outputNames[i], r, seq)
		}
		heads[i] = m
	}
	return &Outputs{Nikud: heads[0], Shin: heads[1], Aux: heads[2]}, nil
}

// releaseValues destroys every allocated value and clears its slot.
func releaseValues(vals []ort.Value) {
	for i, v := range vals {
		if v != nil {
			_ = v.Destroy()
			vals[i] = nil
		}
	}
}

func (p *ONNXProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil
	}
	err := p.session.Destroy()
	p.session = nil
	return err
}
