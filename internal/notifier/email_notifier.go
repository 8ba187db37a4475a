package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/shopspring/decimal"

	config "github.com/ehson200611/Chocoberryy/configs"
)

func SendEmail(recipientEmail string, customerName string, orderNumber string, totalAmount decimal.Decimal) error {
	cfg := config.LoadEmailConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {

		log.Printf("Failed to load AWS SDK config for email to %s (order %s): %v", recipientEmail, orderNumber, err)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	if cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured in environment variables")
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject := fmt.Sprintf("Order %s Confirmation - Thank You for Your Chocoberry Order!", orderNumber)

	totalAmountStr := totalAmount.StringFixed(2)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for your order! Your order %s has been successfully placed.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order Number: %s</li>
                <li>Total Amount: TJS %s</li>
            </ul>
            <p>We'll let you know as soon as your order is ready for pickup.</p>
            <p>Best regards,</p>
            <p>The Chocoberry Team</p>
        </body>
        </html>`, customerName, orderNumber, orderNumber, totalAmountStr)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order %s has been successfully placed.\n\n"+
			"Order Details:\nOrder Number: %s\nTotal Amount: TJS %s\n\n"+
			"We'll let you know as soon as your order is ready for pickup.\n\nBest regards,\nThe Chocoberry Team",
		customerName, orderNumber, orderNumber, totalAmountStr)

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("Failed to send email for order %s to %s: %v", orderNumber, recipientEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Order confirmation email sent successfully for order %s to %s", orderNumber, recipientEmail)
	return nil
}
