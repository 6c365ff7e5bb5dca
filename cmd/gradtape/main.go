// Package main provides the gradtape demo CLI.
//
// It trains a small MLP on a synthetic regression task through the gradient
// tape and reports the loss:
//
//	gradtape -optimizer adam -lr 0.01 -epochs 500 -v 2
//	gradtape version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/born-ml/gradtape/autodiff"
	"github.com/born-ml/gradtape/nn"
	"github.com/born-ml/gradtape/optim"
	"github.com/born-ml/gradtape/tensor"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"
)

const version = "v0.0.1-dev"

// options holds the command-line configuration.
type options struct {
	Epochs    int
	Samples   int
	Hidden    int
	Optimizer string
	LR        float64
	Momentum  float64
	Seed      uint64
	Workers   int
	LogEvery  int
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("gradtape %s\n", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var opt options
	flag.IntVar(&opt.Epochs, "epochs", 300, "number of training steps")
	flag.IntVar(&opt.Samples, "samples", 64, "number of synthetic samples")
	flag.IntVar(&opt.Hidden, "hidden", 16, "hidden layer width")
	flag.StringVar(&opt.Optimizer, "optimizer", "adam", "optimizer: sgd or adam")
	flag.Float64Var(&opt.LR, "lr", 0, "learning rate (0 uses the optimizer default)")
	flag.Float64Var(&opt.Momentum, "momentum", 0, "SGD momentum")
	flag.Uint64Var(&opt.Seed, "seed", 42, "random seed for data and weights")
	flag.IntVar(&opt.Workers, "workers", runtime.NumCPU(), "goroutines used by array kernels")
	flag.IntVar(&opt.LogEvery, "log-every", 50, "log the loss every N epochs")

	klog.InitFlags(nil)
	flag.Parse()

	log := klog.FromContext(ctx)

	parallel := tensor.DefaultParallelConfig()
	parallel.NumWorkers = opt.Workers
	parallel.Enabled = opt.Workers > 1
	tensor.SetParallelConfig(parallel)

	optimizer, err := newOptimizer(opt)
	if err != nil {
		return err
	}

	x, y, err := syntheticData(opt.Samples, opt.Seed)
	if err != nil {
		return fmt.Errorf("failed to build dataset: %w", err)
	}

	model := nn.NewMLP[float32](2, opt.Hidden, 1, nn.NewRand(opt.Seed+1))
	log.Info("Starting training",
		"optimizer", opt.Optimizer, "lr", optimizer.GetLR(),
		"epochs", opt.Epochs, "samples", opt.Samples, "hidden", opt.Hidden,
		"parameters", len(model.Parameters()))

	initial := autodiff.MSE(model.Infer(x), y).Item()
	for epoch := range opt.Epochs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("training interrupted at epoch %d: %w", epoch, err)
		}

		var missing []tensor.UniqueID
		err := autodiff.Catch(func() {
			loss := autodiff.MSE(model.Forward(x.Trace()), y)
			if opt.LogEvery > 0 && epoch%opt.LogEvery == 0 {
				log.Info("Training", "epoch", epoch, "loss", loss.Item())
			}
			missing = optimizer.Update(model, autodiff.Backward(loss))
		})
		if err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		if len(missing) > 0 {
			log.V(2).Info("Parameters without gradient", "epoch", epoch, "ids", missing)
		}
	}
	final := autodiff.MSE(model.Infer(x), y).Item()

	log.Info("Training finished", "initialLoss", initial, "finalLoss", final)
	klog.Flush()
	return nil
}

func newOptimizer(opt options) (optim.Optimizer[float32], error) {
	switch opt.Optimizer {
	case "sgd":
		return optim.NewSGD[float32](optim.SGDConfig{LR: opt.LR, Momentum: opt.Momentum}), nil
	case "adam":
		return optim.NewAdam[float32](optim.AdamConfig{LR: opt.LR}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q (want sgd or adam)", opt.Optimizer)
	}
}

// syntheticData samples inputs from U(-1, 1)² with targets
// y = 2a - b + 0.5ab.
func syntheticData(n int, seed uint64) (x, y autodiff.Tensor[float32, autodiff.NoneTape], err error) {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float32, 0, 2*n)
	ys := make([]float32, 0, n)
	for range n {
		a, b := rng.Float64()*2-1, rng.Float64()*2-1
		xs = append(xs, float32(a), float32(b))
		ys = append(ys, float32(2*a-b+0.5*a*b))
	}

	x, err = autodiff.FromSlice(xs, tensor.Shape{n, 2})
	if err != nil {
		return x, y, err
	}
	y, err = autodiff.FromSlice(ys, tensor.Shape{n, 1})
	return x, y, err
}
