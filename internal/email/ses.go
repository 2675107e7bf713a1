package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/ignite/newsletter-api/internal/config"
)

// SESClient sends mail through the AWS SES v2 API. Used when
// email.provider is "ses".
type SESClient struct {
	client     *sesv2.Client
	sender     string
	senderName string
}

// NewSESClient creates an SES v2 sender. Empty access keys fall back to the
// default AWS credential chain (IAM role in production).
func NewSESClient(ctx context.Context, cfg appconfig.SESConfig, email appconfig.EmailConfig) (*SESClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESClient{
		client:     sesv2.NewFromConfig(awsCfg),
		sender:     email.SenderEmail,
		senderName: email.SenderName,
	}, nil
}

// Send delivers one message via SES SendEmail.
func (c *SESClient) Send(ctx context.Context, msg Message) error {
	from := c.sender
	if c.senderName != "" {
		from = fmt.Sprintf("%s <%s>", c.senderName, c.sender)
	}

	_, err := c.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML)},
					Text: &types.Content{Data: aws.String(msg.Text)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
