package generator

import "runtime"

// GetWorkerCount returns the number of workers to use.
// If configured workers is 0, auto-detects using runtime.NumCPU().
func GetWorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	cpus := runtime.NumCPU()
	if cpus < 1 {
		return 1
	}
	return cpus
}

// PartitionPlans deals customer plans round-robin across workers. A
// customer's accounts, cards and movements stay with one worker so they are
// applied in order.
func PartitionPlans(plans []CustomerPlan, workerCount int) [][]CustomerPlan {
	if workerCount <= 0 {
		workerCount = 1
	}

	partitions := make([][]CustomerPlan, workerCount)
	for i, p := range plans {
		w := i % workerCount
		partitions[w] = append(partitions[w], p)
	}
	return partitions
}
