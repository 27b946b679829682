package restore

import (
	"math"

	"github.com/swdee/go-poserepair"
	"gonum.org/v1/gonum/mat"
)

// degenerateEps is the determinant threshold below which a fitted transform
// is considered degenerate, such as when the source points are near collinear
const degenerateEps = 1e-6

// Affine is a 2x3 transform [[A,B,TX],[C,D,TY]] mapping reference space
// points to current space points
type Affine struct {
	A, B, TX float64
	C, D, TY float64
}

// Apply maps a reference space point through the full transform, including
// the translation component
func (a *Affine) Apply(x, y float32) (float32, float32) {

	fx := float64(x)
	fy := float64(y)

	return float32(a.A*fx + a.B*fy + a.TX),
		float32(a.C*fx + a.D*fy + a.TY)
}

// TransformOffset maps a displacement vector through the linear part of the
// transform only, so the offset is rotated and scaled but never shifted.
// The product is computed in float64 and converted once, a canvas scale
// translation must not erode the low bits of a small offset.  A nil
// transform is the identity
func (a *Affine) TransformOffset(dx, dy float32) (float32, float32) {

	if a == nil {
		return dx, dy
	}

	fx := float64(dx)
	fy := float64(dy)

	return float32(a.A*fx + a.B*fy), float32(a.C*fx + a.D*fy)
}

// EstimateAffine fits a transform from reference space to current space
// using the keypoints present in both sequences with a score above
// minScore.  The sequences are truncated to the shorter length.  It returns
// nil when fewer than 3 correspondences exist or the correspondence
// geometry is degenerate, callers then fall back to untransformed offsets
func EstimateAffine(ref, cur []poserepair.KeyPoint, minScore float32) *Affine {

	n := len(ref)

	if len(cur) < n {
		n = len(cur)
	}

	// build the correspondence set
	var srcX, srcY, dstX, dstY []float64

	for i := 0; i < n; i++ {
		r := ref[i]
		c := cur[i]

		if r.Missing() || c.Missing() {
			continue
		}

		if r.Score <= minScore || c.Score <= minScore {
			continue
		}

		srcX = append(srcX, float64(r.X))
		srcY = append(srcY, float64(r.Y))
		dstX = append(dstX, float64(c.X))
		dstY = append(dstY, float64(c.Y))
	}

	count := len(srcX)

	if count < 3 {
		return nil
	}

	// design matrix with rows [x_ref, y_ref, 1]
	m := mat.NewDense(count, 3, nil)

	for i := 0; i < count; i++ {
		m.Set(i, 0, srcX[i])
		m.Set(i, 1, srcY[i])
		m.Set(i, 2, 1)
	}

	if count == 3 {
		// the exact 3 point solve is unstable when the source points are
		// near collinear, treat that as no transform
		if math.Abs(mat.Det(m)) < degenerateEps {
			return nil
		}
	}

	// solve each output coordinate independently.  For count > 3 this is
	// an overdetermined linear least squares fit over all correspondences
	px, err := solveColumn(m, dstX)

	if err != nil {
		return nil
	}

	py, err := solveColumn(m, dstY)

	if err != nil {
		return nil
	}

	af := &Affine{
		A: px[0], B: px[1], TX: px[2],
		C: py[0], D: py[1], TY: py[2],
	}

	// reject a degenerate linear part, it would collapse offsets
	if math.Abs(af.A*af.D-af.B*af.C) < degenerateEps {
		return nil
	}

	return af
}

// solveColumn solves m * p = b for the coefficient vector p, minimizing the
// squared residual when the system is overdetermined
func solveColumn(m *mat.Dense, b []float64) ([]float64, error) {

	var sol mat.VecDense

	err := sol.SolveVec(m, mat.NewVecDense(len(b), b))

	if err != nil {
		return nil, err
	}

	return []float64{sol.AtVec(0), sol.AtVec(1), sol.AtVec(2)}, nil
}
