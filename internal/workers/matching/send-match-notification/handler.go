// internal/workers/matching/send-match-notification/handler.go
package sendmatchnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/matching"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "send-match-notification"

var (
	ErrMissingRecipient   = errors.New("MISSING_RECIPIENT")
	ErrNotificationFailed = errors.New("NOTIFICATION_FAILED")
)

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// EventPublisher is satisfied by aws.SNSClient.
type EventPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// qualityRank orders match qualities for the notify threshold check.
var qualityRank = map[string]int{
	matching.QualityWeak:      0,
	matching.QualityFair:      1,
	matching.QualityGood:      2,
	matching.QualityExcellent: 3,
}

type Handler struct {
	config    *Config
	email     EmailSender
	publisher EventPublisher
	logger    logger.Logger
}

func NewHandler(config *Config, email EmailSender, publisher EventPublisher, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		email:     email,
		publisher: publisher,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "NOTIFICATION_FAILED"
		if errors.Is(err, ErrMissingRecipient) {
			errorCode = "MISSING_RECIPIENT"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.DealID == "" {
		return nil, fmt.Errorf("%w: deal id is required", ErrNotificationFailed)
	}

	if qualityRank[input.BestQuality] < qualityRank[h.config.NotifyQuality] {
		h.logger.Info("match quality below notify threshold", map[string]interface{}{
			"dealId":      input.DealID,
			"bestQuality": input.BestQuality,
			"threshold":   h.config.NotifyQuality,
		})
		return &Output{
			DealID:     input.DealID,
			Notified:   false,
			SkipReason: fmt.Sprintf("best quality %q below notify threshold %q", input.BestQuality, h.config.NotifyQuality),
		}, nil
	}

	if !isValidEmail(input.RecipientEmail) {
		return nil, fmt.Errorf("%w: %q", ErrMissingRecipient, input.RecipientEmail)
	}

	messageID, err := h.sendEmail(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	published := h.publishEvent(ctx, input)

	h.logger.Info("match notification sent", map[string]interface{}{
		"dealId":         input.DealID,
		"recipient":      input.RecipientEmail,
		"matches":        len(input.Matches),
		"eventPublished": published,
	})

	return &Output{
		DealID:         input.DealID,
		Notified:       true,
		EmailMessageID: messageID,
		EventPublished: published,
		SentAt:         time.Now().UTC(),
	}, nil
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) (string, error) {
	subject := fmt.Sprintf("%d CDE matches found for %s", len(input.Matches), dealLabel(input))

	out, err := h.email.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(h.config.FromEmail),
		Destination: &sestypes.Destination{ToAddresses: []string{input.RecipientEmail}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(h.buildBody(input))},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

// publishEvent is best-effort; the email is the notification of record.
func (h *Handler) publishEvent(ctx context.Context, input *Input) bool {
	if h.publisher == nil || h.config.TopicARN == "" {
		return false
	}

	payload, err := json.Marshal(map[string]interface{}{
		"dealId":      input.DealID,
		"bestQuality": input.BestQuality,
		"matchCount":  len(input.Matches),
	})
	if err != nil {
		return false
	}

	_, err = h.publisher.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(h.config.TopicARN),
		Subject:  aws.String("deal.matches.found"),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"quality": {
				DataType:    aws.String("String"),
				StringValue: aws.String(input.BestQuality),
			},
		},
	})
	if err != nil {
		h.logger.Warn("failed to publish match event", map[string]interface{}{
			"dealId": input.DealID,
			"error":  err,
		})
		return false
	}
	return true
}

func (h *Handler) buildBody(input *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Matching results for %s\r\n\r\n", dealLabel(input))

	limit := len(input.Matches)
	if h.config.MaxMatchesInEmail > 0 && limit > h.config.MaxMatchesInEmail {
		limit = h.config.MaxMatchesInEmail
	}

	for i := 0; i < limit; i++ {
		m := input.Matches[i]
		fmt.Fprintf(&b, "%d. %s — score %d (%s)\r\n", i+1, m.CDEName, m.Score, m.Quality)
		for _, reason := range m.Reasons {
			fmt.Fprintf(&b, "   - %s\r\n", reason)
		}
		b.WriteString("\r\n")
	}

	if rest := len(input.Matches) - limit; rest > 0 {
		fmt.Fprintf(&b, "...and %d more matches in the marketplace.\r\n", rest)
	}

	return b.String()
}

func dealLabel(input *Input) string {
	if input.DealName != "" {
		return input.DealName
	}
	return input.DealID
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
