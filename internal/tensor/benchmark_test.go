package tensor_test

import (
	"fmt"
	"testing"

	"github.com/born-ml/gradtape/internal/parallel"
	"github.com/born-ml/gradtape/internal/tensor"
)

func BenchmarkArrayCreation(b *testing.B) {
	shape := tensor.Shape{100, 100}

	b.Run("NewArray", func(b *testing.B) {
		for b.Loop() {
			_, _ = tensor.NewArray[float32](shape)
		}
	})

	b.Run("CPU.Zeros", func(b *testing.B) {
		dev := tensor.CPU[float32]{Shape: shape}
		for b.Loop() {
			_ = dev.Zeros()
		}
	})
}

func BenchmarkShapeOperations(b *testing.B) {
	shape := tensor.Shape{100, 100}

	b.Run("NumElements", func(b *testing.B) {
		for b.Loop() {
			_ = shape.NumElements()
		}
	})

	b.Run("Equal", func(b *testing.B) {
		other := shape.Clone()
		for b.Loop() {
			_ = shape.Equal(other)
		}
	})
}

func BenchmarkArrayKernels(b *testing.B) {
	configs := map[string]parallel.Config{
		"sequential": parallel.Sequential(),
		"parallel":   parallel.DefaultConfig(),
	}

	for _, size := range []int{1 << 10, 1 << 16, 1 << 20} {
		for name, cfg := range configs {
			b.Run(fmt.Sprintf("AddScaled/%s/%d", name, size), func(b *testing.B) {
				tensor.SetParallelConfig(cfg)
				defer tensor.SetParallelConfig(parallel.DefaultConfig())

				x, _ := tensor.NewArray[float32](tensor.Shape{size})
				y, _ := tensor.NewArray[float32](tensor.Shape{size})
				y.Fill(1)
				for b.Loop() {
					x.AddScaled(y, 0.5)
				}
			})
		}
	}
}
