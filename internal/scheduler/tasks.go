package scheduler

import (
	"github.com/hibiken/asynq"
)

const TaskSearchTrendsRollup = "search.trends.rollup"

const TaskSearchPopularRefresh = "search.popular.refresh"

// Both tasks carry no payload: each run recomputes the full rollup from
// search history, so there is nothing to parameterize.

func NewSearchTrendsRollupTask() *asynq.Task {
	return asynq.NewTask(TaskSearchTrendsRollup, nil)
}

func NewSearchPopularRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskSearchPopularRefresh, nil)
}
