package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/praveshgrewal/UCMS/domain"
)

// CodeServiceImpl implements domain.CodeService. Codes live in the
// database keyed by contact; Redis only carries the resend throttle.
type CodeServiceImpl struct {
	codes       domain.CodeRepository
	notifier    domain.NotificationService
	redisClient *redis.Client
	logger      *zap.Logger
	config      CodeConfig
}

type CodeConfig struct {
	Length       int
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewCodeService creates a new verification code service
func NewCodeService(codes domain.CodeRepository, notifier domain.NotificationService, redisClient *redis.Client, logger *zap.Logger, config CodeConfig) domain.CodeService {
	return &CodeServiceImpl{
		codes:       codes,
		notifier:    notifier,
		redisClient: redisClient,
		logger:      logger,
		config:      config,
	}
}

// Issue implements domain.CodeService. The code is persisted before any
// delivery attempt, so a gateway outage never loses a generated code; the
// replace is retried once if a concurrent issue for the same contact races
// it on the unique index.
func (s *CodeServiceImpl) Issue(ctx context.Context, contact string) (*domain.VerificationCode, bool, error) {
	value, err := s.generateSecureCode()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate code: %w", err)
	}

	code := &domain.VerificationCode{
		Contact:   contact,
		Code:      value,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}

	if err := s.codes.Replace(ctx, code); err != nil {
		if err = s.codes.Replace(ctx, code); err != nil {
			return nil, false, fmt.Errorf("failed to store code: %w", err)
		}
	}

	if err := s.redisClient.Set(ctx, resendKey(contact), 1, s.config.ResendWindow).Err(); err != nil {
		s.logger.Warn("failed to set resend throttle", zap.String("contact", contact), zap.Error(err))
	}

	return code, s.dispatch(contact, value), nil
}

// dispatch sends the code over the contact's channel. Delivery failures
// are logged and reported as a flag, never as an error: the stored code
// stays usable if the user receives it through another path.
func (s *CodeServiceImpl) dispatch(contact, code string) bool {
	message := fmt.Sprintf("Your UCMS Alumni Portal verification code is %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))

	var err error
	switch domain.ClassifyContact(contact) {
	case domain.ChannelPhone:
		err = s.notifier.SendSMS(contact, message)
	case domain.ChannelEmail:
		err = s.notifier.SendEmail(contact, "Your OTP - UCMS Alumni Portal", message)
	default:
		s.logger.Warn("cannot classify contact for delivery", zap.String("contact", contact))
		return false
	}

	if err != nil {
		s.logger.Error("code delivery failed", zap.String("contact", contact), zap.Error(err))
		return false
	}
	return true
}

// Confirm implements domain.CodeService. Consumption is one-way: a
// confirmed code never becomes confirmable again.
func (s *CodeServiceImpl) Confirm(ctx context.Context, contact, code string) error {
	if contact == "" || code == "" {
		return domain.ErrCodeInvalid
	}

	found, err := s.codes.FindLive(ctx, contact, code, time.Now())
	if err != nil {
		return err
	}

	if err := s.codes.MarkConsumed(ctx, found.ID); err != nil {
		return fmt.Errorf("failed to consume code: %w", err)
	}
	return nil
}

// Confirmed implements domain.CodeService
func (s *CodeServiceImpl) Confirmed(ctx context.Context, contact string) (bool, error) {
	return s.codes.HasConsumed(ctx, contact)
}

// CanResend implements domain.CodeService with Redis-based throttling
func (s *CodeServiceImpl) CanResend(ctx context.Context, contact string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(contact)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure numeric code
func (s *CodeServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

func resendKey(contact string) string {
	return "otp:res:" + contact
}
