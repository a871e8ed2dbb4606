package engine

import (
	"math"

	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// BatchPlan is one numbered batch of a production order.
type BatchPlan struct {
	Sequence int `json:"sequence_number"`
	Quantity int `json:"quantity"`
}

// GenerateBatches splits total pieces into ceil(total/size) batches of size
// pieces; the last batch carries the remainder.
func GenerateBatches(total, size int) ([]BatchPlan, error) {
	if total <= 0 {
		return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, "total quantity must be positive")
	}
	if size <= 0 {
		return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, "batch size must be positive")
	}

	n := (total + size - 1) / size
	plans := make([]BatchPlan, n)
	for i := range plans {
		plans[i] = BatchPlan{Sequence: i + 1, Quantity: size}
	}
	if rem := total % size; rem != 0 {
		plans[n-1].Quantity = rem
	}
	return plans, nil
}

// PieceMinutes is the adjusted standard time of one piece: the sum of the
// operation times divided by the version's efficiency factor.
func PieceMinutes(finalTimes []float64, efficiencyFactor float64) float64 {
	var sum float64
	for _, t := range finalTimes {
		sum += t
	}
	if efficiencyFactor <= 0 {
		efficiencyFactor = 1
	}
	return sum / efficiencyFactor
}

// SuggestBatchSize is the number of pieces the cell can turn out in one
// pulse: floor(operators * pulse / pieceMinutes), 0 when pieceMinutes <= 0.
func SuggestBatchSize(operators int, pulseMinutes int, pieceMinutes float64) int {
	if pieceMinutes <= 0 {
		return 0
	}
	return int(math.Floor(float64(operators*pulseMinutes) / pieceMinutes))
}
