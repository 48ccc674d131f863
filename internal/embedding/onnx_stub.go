//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

// ONNXEmbedder stub type when built without CGO (see onnx.go for the real
// implementation).
type ONNXEmbedder struct{}

// NewONNXEmbedder returns an error when built without CGO (ONNX not available).
func NewONNXEmbedder(_ string, _, _ int) (*ONNXEmbedder, error) {
	return nil, errors.New("ONNX embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

func (e *ONNXEmbedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, ErrModelUnavailable
}

func (e *ONNXEmbedder) EmbedImage(_ context.Context, _ []byte) ([]float32, error) {
	return nil, ErrModelUnavailable
}

func (e *ONNXEmbedder) Dimensions() int { return 0 }

func (e *ONNXEmbedder) Close() error { return nil }
