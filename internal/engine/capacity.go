package engine

import "fmt"

// CapacityChange is the outcome of comparing the planned crew with the
// operators currently present.
type CapacityChange struct {
	Warning               bool    `json:"warning"`
	OriginalOperators     int     `json:"original_operators"`
	CurrentOperators      int     `json:"current_operators"`
	CapacityFactor        float64 `json:"capacity_factor,omitempty"`
	OriginalBatchSize     int     `json:"original_batch_size"`
	RecalculatedBatchSize *int    `json:"recalculated_batch_size,omitempty"`
}

// DetectCapacityChange proposes a smaller batch when 0 < current < original.
// The proposal is max(1, floor(batchSize * current / original)).
func DetectCapacityChange(original, current, batchSize int) CapacityChange {
	out := CapacityChange{
		OriginalOperators: original,
		CurrentOperators:  current,
		OriginalBatchSize: batchSize,
	}
	if current <= 0 || current >= original {
		return out
	}

	size := batchSize * current / original
	if size < 1 {
		size = 1
	}
	out.Warning = true
	out.CapacityFactor = float64(current) / float64(original)
	out.RecalculatedBatchSize = &size
	return out
}

// RemainingQuantity is what is left of total after done pieces, never negative.
func RemainingQuantity(total, done int) int {
	if done >= total {
		return 0
	}
	return total - done
}

// RebalanceVersionName names the n-th rebalance clone of a version.
func RebalanceVersionName(original string, n int) string {
	return fmt.Sprintf("%s-R%d", original, n)
}
