package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"descgate/internal/domain"
	"descgate/internal/port"
)

type sesNotifier struct {
	client         *sesv2.Client
	fromAddress    string
	fromName       string
	stewardAddress string
}

// NewSESNotifier creates a new SES-backed Notifier.
func NewSESNotifier(region, fromAddress, fromName, stewardAddress string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesNotifier{
		client:         client,
		fromAddress:    fromAddress,
		fromName:       fromName,
		stewardAddress: stewardAddress,
	}, nil
}

func (s *sesNotifier) NotifyRejection(ctx context.Context, rec *domain.GateRecord) error {
	subject := fmt.Sprintf("Description rejected for asset %s", rec.AssetID)

	structural := rec.StructuralErrorList()
	semantic := rec.SemanticErrorList()

	htmlBody := buildRejectionHTML(rec, structural, semantic)
	textBody := buildRejectionText(rec, structural, semantic)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.stewardAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRejectionText(rec *domain.GateRecord, structural, semantic []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The generated description for asset %s was rejected (%s).\n\n", rec.AssetID, rec.Status)
	if len(structural) > 0 {
		b.WriteString("Structural errors:\n")
		for _, e := range structural {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
		b.WriteString("\n")
	}
	if len(semantic) > 0 {
		b.WriteString("Semantic errors:\n")
		for _, e := range semantic {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Record ID: %s\n\nDescription Gate", rec.ID)
	return b.String()
}

func buildRejectionHTML(rec *domain.GateRecord, structural, semantic []string) string {
	var items strings.Builder
	if len(structural) > 0 {
		items.WriteString("<h3 style=\"color: #333;\">Structural errors</h3><ul>")
		for _, e := range structural {
			fmt.Fprintf(&items, "<li>%s</li>", html.EscapeString(e))
		}
		items.WriteString("</ul>")
	}
	if len(semantic) > 0 {
		items.WriteString("<h3 style=\"color: #333;\">Semantic errors</h3><ul>")
		for _, e := range semantic {
			fmt.Fprintf(&items, "<li>%s</li>", html.EscapeString(e))
		}
		items.WriteString("</ul>")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Description rejected</h2>
  <p>The generated description for asset <strong>%s</strong> was rejected (%s).</p>
  %s
  <p style="color: #999; font-size: 12px;">Record ID: %s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Description Gate</p>
</body>
</html>`, html.EscapeString(rec.AssetID), rec.Status, items.String(), rec.ID)
}
