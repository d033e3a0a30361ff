package sqsgath

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// New creates a gatherer that sends progress of one handin to an SQS queue.
func New(ctx context.Context, region string, handinUuid string, queueUrl string, log *slog.Logger) (*sqsGatherer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewWithClient(sqs.NewFromConfig(cfg), handinUuid, queueUrl, log), nil
}

func NewWithClient(client sqsSender, handinUuid string, queueUrl string, log *slog.Logger) *sqsGatherer {
	if log == nil {
		log = slog.Default()
	}
	return &sqsGatherer{
		sqsClient:  client,
		queueUrl:   queueUrl,
		handinUuid: handinUuid,
		log:        log,
	}
}
