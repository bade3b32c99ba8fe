package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/meridareporta/backend/internal/models"
	pkglogger "github.com/meridareporta/backend/pkg/logger"
)

// AWSSESNotifier sends moderation notices using AWS SES
type AWSSESNotifier struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewAWSSESNotifier creates a new AWS SES moderation notifier
func NewAWSSESNotifier(region, fromAddress string, logger *slog.Logger) (*AWSSESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESNotifier{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// SendStrikeNotice emails the user about a strike and any resulting ban
func (s *AWSSESNotifier) SendStrikeNotice(ctx context.Context, user *models.User, result *models.StrikeResult) error {
	subject := "Aviso de moderación: strike registrado en tu cuenta"
	banLine := ""
	if result.IsBanned {
		subject = "Aviso de moderación: tu cuenta ha sido suspendida"
		if result.IsPermanent {
			banLine = "Tu cuenta ha sido suspendida de forma permanente."
		} else if result.BanUntil != nil {
			banLine = fmt.Sprintf("Tu cuenta ha sido suspendida hasta el %s.",
				result.BanUntil.Format("02/01/2006 15:04 MST"))
		}
	}

	textBody := fmt.Sprintf(`Hola %s,

Se ha registrado un strike en tu cuenta por contenido que infringe las reglas de la plataforma.

Strikes acumulados: %d
`, user.Name, result.StrikeCount)
	if result.BanReason != "" {
		textBody += fmt.Sprintf("Motivo: %s\n", result.BanReason)
	}
	if banLine != "" {
		textBody += "\n" + banLine + "\n"
	}
	textBody += `
Si crees que esto es un error, contacta al equipo de soporte.

Este es un mensaje automático. Por favor no respondas a este correo.
`

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{user.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out, err := s.sesClient.SendEmail(sendCtx, input)
	if err != nil {
		s.logger.Error("failed to send strike notice via SES",
			slog.String("email", pkglogger.SanitizedEmail(user.Email)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("strike notice sent",
		slog.String("email", pkglogger.SanitizedEmail(user.Email)),
		slog.String("message_id", *out.MessageId))
	return nil
}
