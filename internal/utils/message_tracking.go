package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var messageMap sync.Map

// TrackMessage remembers which Kafka message a result came from so its
// offset can be committed after the result is safely stored.
func TrackMessage(resultID string, msg *kafka.Message) {
	messageMap.Store(resultID, msg)
}

func GetMessageForResult(resultID string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(resultID)
	if !ok {
		return nil, false
	}
	messageMap.Delete(resultID)
	return msg.(*kafka.Message), true
}
