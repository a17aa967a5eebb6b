package email

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type SES struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSES(awsConfig aws.Config, sender string) *SES {
	return &SES{ses: ses.NewFromConfig(awsConfig), sender: sender}
}

func (t *SES) Send(ctx context.Context, m Message) error {
	_, err := t.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(t.sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{m.To},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(m.Subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(m.Body), Charset: aws.String(charset)},
				},
			},
		},
	)
	return err
}
