package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/utils"
)

// MailSender delivers an HTML message. *utils.Mailer implements it.
type MailSender interface {
	Enabled() bool
	Send(to []string, subject, htmlBody string) error
}

// MailNotifier e-mails the order desk when a client submits a draft.
type MailNotifier struct {
	mailer MailSender
	to     string
}

func NewMailNotifier(mailer MailSender, to string) *MailNotifier {
	return &MailNotifier{mailer: mailer, to: to}
}

func (n *MailNotifier) DraftSubmitted(ctx context.Context, client models.Client, draft DraftView) error {
	if n.to == "" || n.mailer == nil || !n.mailer.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	subject := fmt.Sprintf("Draft order #%d submitted by %s", draft.ID, client.Name)
	return n.mailer.Send([]string{n.to}, subject, submissionBody(client, draft))
}

func submissionBody(client models.Client, draft DraftView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Draft order #%d</h2>", draft.ID)
	fmt.Fprintf(&b, "<p>Client: %s (%s)</p>", html.EscapeString(client.Name), html.EscapeString(client.Username))
	if draft.Notes != "" {
		fmt.Fprintf(&b, "<p>Notes: %s</p>", html.EscapeString(draft.Notes))
	}
	b.WriteString(`<table border="1" cellpadding="4"><tr><th>Code</th><th>Product</th><th>Qty</th><th>Unit price</th><th>Total</th><th>Offer</th></tr>`)
	for _, it := range draft.Items {
		offer := "-"
		if it.OfferApplied && it.OfferID != nil {
			offer = fmt.Sprintf("#%d (%.2f%%)", *it.OfferID, it.DiscountPercent)
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%d %s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(it.Code), html.EscapeString(it.ProductName), it.Quantity, html.EscapeString(it.Unit),
			utils.FormatMoney(it.UnitPrice), utils.FormatMoney(it.TotalPrice), offer)
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p><strong>Estimated total: %s</strong></p>", utils.FormatMoney(draft.EstimatedTotal))
	return b.String()
}
