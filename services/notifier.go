package services

import (
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// LeadNotifier pushes freshly created leads to an external webhook (CRM,
// Zapier and the like). Delivery is fire-and-forget; a lost notification never
// fails the submission that triggered it.
type LeadNotifier struct {
	httpClient *resty.Client
	webhookURL string
	logger     *zap.Logger
}

// NewLeadNotifier returns nil when no webhook URL is configured; a nil
// notifier is safe to call.
func NewLeadNotifier(webhookURL string, logger *zap.Logger) *LeadNotifier {
	if webhookURL == "" {
		return nil
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &LeadNotifier{
		httpClient: client,
		webhookURL: webhookURL,
		logger:     logger,
	}
}

func (n *LeadNotifier) NotifyNewLead(lead *models.Lead) {
	if n == nil {
		return
	}
	go func() {
		resp, err := n.httpClient.R().
			SetBody(lead).
			Post(n.webhookURL)
		if err != nil {
			n.logger.Warn("lead webhook delivery failed",
				zap.String("leadId", lead.ID.Hex()),
				zap.Error(err))
			return
		}
		if resp.IsError() {
			n.logger.Warn("lead webhook returned error status",
				zap.String("leadId", lead.ID.Hex()),
				zap.Int("status", resp.StatusCode()))
		}
	}()
}
