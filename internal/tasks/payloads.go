package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePosterExport = "poster:export"
)

// PosterExportPayload 描述导出一张海报所需的最小信息。
type PosterExportPayload struct {
	SessionID     string `json:"session_id"`
	Tier          string `json:"tier"`
	CorrelationID string `json:"correlation_id"`
}

// NewPosterExportTask 构造一个新的海报导出任务。
func NewPosterExportTask(sessionID, tier, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PosterExportPayload{
		SessionID:     sessionID,
		Tier:          tier,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePosterExport, payload), nil
}
