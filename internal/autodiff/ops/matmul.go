package ops

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// MatMulTranspose computes x @ wᵀ.
//
// Shapes:
//   - x: [in] or [batch, in]
//   - w: [out, in]
//   - result: [out] or [batch, out]
//
// Backward pass:
//   - grad_x += outputGrad @ w
//   - grad_w += outputGradᵀ @ x
func MatMulTranspose[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T], w autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, T] {
	batch, in, outDim, outShape := matMulShapes(x.Shape(), w.Shape())

	xv, wv := x.Data().Data(), w.Data().Data()
	out, err := tensor.NewArray[E](outShape)
	if err != nil {
		panic(fmt.Sprintf("MatMulTranspose: %v", err))
	}
	ov := out.Data()
	for b := range batch {
		row := xv[b*in : (b+1)*in]
		for o := range outDim {
			var acc E
			for i, wi := range wv[o*in : (o+1)*in] {
				acc += row[i] * wi
			}
			ov[b*outDim+o] = acc
		}
	}

	xs, tape := x.SplitTape()
	result := autodiff.NewTensor(out)
	if tape.OwnsTape() {
		xp, wp, op := xs.Phantom(), w.Phantom(), result.Phantom()
		tape.AddBackwardOp(func(g *autodiff.Gradients) {
			xGrad, outGrad := mutAndRef(g, xp, op)
			xg, og := xGrad.Data(), outGrad.Data()
			for b := range batch {
				for o := range outDim {
					gv := og[b*outDim+o]
					for i := range in {
						xg[b*in+i] += gv * wv[o*in+i]
					}
				}
			}

			wGrad, outGrad := mutAndRef(g, wp, op)
			wg, og := wGrad.Data(), outGrad.Data()
			for b := range batch {
				for o := range outDim {
					gv := og[b*outDim+o]
					for i := range in {
						wg[o*in+i] += gv * xv[b*in+i]
					}
				}
			}
		})
	}
	return autodiff.PutTape(result, tape)
}

func matMulShapes(xs, ws tensor.Shape) (batch, in, out int, result tensor.Shape) {
	if len(ws) != 2 {
		panic(fmt.Sprintf("MatMulTranspose: weight must be 2D [out, in], got %v", ws))
	}
	out, in = ws[0], ws[1]
	switch len(xs) {
	case 1:
		batch, result = 1, tensor.Shape{out}
	case 2:
		batch, result = xs[0], tensor.Shape{xs[0], out}
	default:
		panic(fmt.Sprintf("MatMulTranspose: input must be [in] or [batch, in], got %v", xs))
	}
	if xs[len(xs)-1] != in {
		panic(fmt.Sprintf("MatMulTranspose: input has %d features, weight expects %d", xs[len(xs)-1], in))
	}
	return batch, in, out, result
}

// AddBroadcast adds the vector b of shape [n] to every row of x, whose last
// dimension must be n.
//
// Backward pass:
//   - grad_x += outputGrad
//   - grad_b += outputGrad summed over rows
func AddBroadcast[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T], b autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, T] {
	xs, bs := x.Shape(), b.Shape()
	if len(bs) != 1 || len(xs) == 0 || xs[len(xs)-1] != bs[0] {
		panic(fmt.Sprintf("AddBroadcast: cannot broadcast %v over %v", bs, xs))
	}
	n := bs[0]

	out := x.Data().Clone()
	ov, bv := out.Data(), b.Data().Data()
	for i := range ov {
		ov[i] += bv[i%n]
	}

	in, tape := x.SplitTape()
	result := autodiff.NewTensor(out)
	if tape.OwnsTape() {
		ip, bp, op := in.Phantom(), b.Phantom(), result.Phantom()
		tape.AddBackwardOp(func(g *autodiff.Gradients) {
			xGrad, outGrad := mutAndRef(g, ip, op)
			xGrad.AddAssign(outGrad)

			bGrad, outGrad := mutAndRef(g, bp, op)
			bg, og := bGrad.Data(), outGrad.Data()
			for i, v := range og {
				bg[i%n] += v
			}
		})
	}
	return autodiff.PutTape(result, tape)
}
