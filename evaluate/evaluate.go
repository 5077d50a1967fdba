// Package evaluate provides streaming regression metrics and progressive
// validation. Metrics update incrementally from (truth, prediction) pairs,
// so a model can be scored on the same pass that trains it.
package evaluate

import (
	"fmt"
	"math"
)

// Metric is an incrementally updated regression score.
type Metric interface {
	// Update folds one (truth, prediction) pair into the score.
	Update(yTrue, yPred float64)

	// Get returns the current value of the score.
	Get() float64

	fmt.Stringer
}

// Compile-time checks to ensure types implement the Metric interface.
var (
	_ Metric = (*MAE)(nil)
	_ Metric = (*MSE)(nil)
	_ Metric = (*RMSE)(nil)
	_ Metric = (*R2)(nil)
)

// MAE is the mean absolute error.
type MAE struct {
	n   uint64
	sum float64
}

// NewMAE creates a mean absolute error metric.
func NewMAE() *MAE {
	return &MAE{}
}

// Update implements the Metric interface.
func (m *MAE) Update(yTrue, yPred float64) {
	m.n++
	m.sum += math.Abs(yTrue - yPred)
}

// Get implements the Metric interface.
func (m *MAE) Get() float64 {
	if m.n == 0 {
		return 0
	}

	return m.sum / float64(m.n)
}

// String implements the fmt.Stringer interface.
func (m *MAE) String() string {
	return fmt.Sprintf("MAE: %f", m.Get())
}

// MSE is the mean squared error.
type MSE struct {
	n   uint64
	sum float64
}

// NewMSE creates a mean squared error metric.
func NewMSE() *MSE {
	return &MSE{}
}

// Update implements the Metric interface.
func (m *MSE) Update(yTrue, yPred float64) {
	e := yTrue - yPred

	m.n++
	m.sum += e * e
}

// Get implements the Metric interface.
func (m *MSE) Get() float64 {
	if m.n == 0 {
		return 0
	}

	return m.sum / float64(m.n)
}

// String implements the fmt.Stringer interface.
func (m *MSE) String() string {
	return fmt.Sprintf("MSE: %f", m.Get())
}

// RMSE is the root mean squared error.
type RMSE struct {
	mse MSE
}

// NewRMSE creates a root mean squared error metric.
func NewRMSE() *RMSE {
	return &RMSE{}
}

// Update implements the Metric interface.
func (m *RMSE) Update(yTrue, yPred float64) {
	m.mse.Update(yTrue, yPred)
}

// Get implements the Metric interface.
func (m *RMSE) Get() float64 {
	return math.Sqrt(m.mse.Get())
}

// String implements the fmt.Stringer interface.
func (m *RMSE) String() string {
	return fmt.Sprintf("RMSE: %f", m.Get())
}

// R2 is the coefficient of determination. It compares the model against
// the running mean of the targets seen so far: 1 is a perfect fit, 0
// matches always predicting the mean, and negative values are worse than
// that baseline.
type R2 struct {
	n     uint64
	mean  float64
	ssTot float64
	ssRes float64
}

// NewR2 creates a coefficient of determination metric.
func NewR2() *R2 {
	return &R2{}
}

// Update implements the Metric interface.
func (m *R2) Update(yTrue, yPred float64) {
	e := yTrue - yPred
	m.ssRes += e * e

	m.n++
	delta := yTrue - m.mean
	m.mean += delta / float64(m.n)
	m.ssTot += delta * (yTrue - m.mean)
}

// Get implements the Metric interface. It returns 0 until the targets
// show any variance.
func (m *R2) Get() float64 {
	if m.ssTot == 0 {
		return 0
	}

	return 1 - m.ssRes/m.ssTot
}

// String implements the fmt.Stringer interface.
func (m *R2) String() string {
	return fmt.Sprintf("R2: %f", m.Get())
}
