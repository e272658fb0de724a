package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_RESULTS = "analysis-results" // per-comment results from the serving path
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)
