package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repository "github.com/shopcraft/storefront/internal/repositories"
	"github.com/shopcraft/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Notification, int, error)
}

type notificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	email    sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository, email sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, userRepo: userRepo, email: email}
}

// SendOrderConfirmation emails the order's owner and records the attempt.
// The notification row keeps the sent/failed outcome either way.
func (s *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {

	user, err := s.userRepo.GetUserByID(ctx, order.UserID)
	if err != nil {
		return errors.NotFoundError("User not found").WithError(err)
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      models.NotificationTypeEmail,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Order %s confirmed", order.ID),
		Content:   orderConfirmationBody(user, order),
		Status:    models.NotificationStatusPending,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return errors.DatabaseError("Failed to record notification").WithError(err)
	}

	sendErr := s.email.Send(ctx, &models.EmailNotificationRequest{
		Recipient: notification.Recipient,
		Subject:   notification.Subject,
		Content:   notification.Content,
	})

	now := time.Now()

	if sendErr != nil {
		notification.Status = models.NotificationStatusFailed
		notification.Error = sendErr.Error()
	} else {
		notification.Status = models.NotificationStatusSent
		notification.SentAt = &now
	}

	if err := s.repo.UpdateNotification(ctx, notification); err != nil {
		return errors.DatabaseError("Failed to update notification").WithError(err)
	}

	if sendErr != nil {
		return errors.ThirdPartyError("Failed to send confirmation email").WithError(sendErr)
	}

	return nil
}

func (s *notificationService) ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Notification, int, error) {

	notifications, total, err := s.repo.ListNotificationsByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, total, nil
}

func orderConfirmationBody(user *models.User, order *models.Order) string {

	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order! We've received your payment of %s.\n\n",
		user.Name, order.TotalAmount.StringFixed(2))

	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx %s - %s\n", item.Quantity, item.Name, item.LineTotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\nWe'll let you know when it ships.\n")

	return b.String()
}
