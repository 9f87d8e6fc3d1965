// Package notify - почтовый канал уведомлений. Доставка best-effort:
// ошибки логируются и никогда не влияют на результат запроса.
package notify

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/config"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// Notifier - канал уведомлений команд и горожан.
type Notifier interface {
	ReportAssigned(team storage.Team, report storage.Report, distanceKm float64)
	ReportResolved(citizenEmail string, report storage.Report)
}

// SMTPNotifier отправляет письма через gomail.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	logger *zap.Logger
	from   string
}

// NewSMTPNotifier создаёт SMTPNotifier из конфигурации.
func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		logger: logger,
		from:   cfg.From,
	}
}

// ReportAssigned уведомляет команду о новой назначенной заявке.
func (n *SMTPNotifier) ReportAssigned(team storage.Team, report storage.Report, distanceKm float64) {
	if team.ContactEmail == "" {
		return
	}

	subject := fmt.Sprintf("New waste report assigned: %s", report.WasteType)
	body := fmt.Sprintf(
		"Team %s has been assigned report %s.\nLocation: %s (%.5f, %.5f), %.2f km from your service center.\nSeverity: %s, priority %d.",
		team.Name, report.ID, report.Address, report.Lat, report.Lng, distanceKm, report.Severity, report.PriorityScore,
	)

	n.send(team.ContactEmail, subject, body)
}

// ReportResolved уведомляет горожанина о закрытии его заявки.
func (n *SMTPNotifier) ReportResolved(citizenEmail string, report storage.Report) {
	if citizenEmail == "" {
		return
	}

	subject := "Your waste report has been resolved"
	body := fmt.Sprintf(
		"Report %s at %s has been resolved by %s. Thank you for keeping the city clean!",
		report.ID, report.Address, report.AssignedMunicipality,
	)

	n.send(citizenEmail, subject, body)
}

func (n *SMTPNotifier) send(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Warn("email delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

// NoopNotifier - заглушка для dev-окружения и тестов.
type NoopNotifier struct{}

// ReportAssigned ничего не делает.
func (NoopNotifier) ReportAssigned(storage.Team, storage.Report, float64) {}

// ReportResolved ничего не делает.
func (NoopNotifier) ReportResolved(string, storage.Report) {}
