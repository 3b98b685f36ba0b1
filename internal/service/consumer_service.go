package service

import (
	"context"
	"encoding/json"

	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService refreshes a session's questionnaire in the background
// after an upload, so the synchronous upload response stays fast.
type consumerService struct {
	pubSub               *gochannel.GoChannel
	topicName            string
	questionnaireService IQuestionnaireService
	logger               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	questionnaireService IQuestionnaireService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:               pubSub,
		topicName:            topicName,
		questionnaireService: questionnaireService,
		logger:               logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishExtractAnswersMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("service.consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages would retry forever
		return
	}

	cs.logger.Info("service.consumer", "refreshing questionnaire answers", map[string]interface{}{
		"session_id": payload.SessionId.String(),
	})

	if _, err := cs.questionnaireService.Extract(ctx, payload.SessionId, ""); err != nil {
		cs.logger.Error("service.consumer", "background extraction failed", map[string]interface{}{
			"session_id": payload.SessionId.String(),
			"error":      err.Error(),
		})
		msg.Nack() // persistence errors are retriable
		return
	}

	msg.Ack()
}
