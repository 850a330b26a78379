package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"gymflow/internal/logger"
	"gymflow/internal/metrics"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
	maxAttempts    = 3
)

type Message struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues notification emails in redis and drains the queue from a
// background worker, so a slow SMTP server never blocks a request handler.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// EnrollmentConfirmed queues the confirmation sent after a member secures a
// spot in a class.
func (s *Service) EnrollmentConfirmed(ctx context.Context, to, name, activity string, startsAt time.Time) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYou are enrolled in %s on %s.\n\nSee you there!\nGymFlow",
		name, activity, startsAt.Format("Monday, 2 Jan 2006 at 15:04"),
	)
	return s.enqueue(ctx, Message{
		Type:    "enrollment_confirmed",
		To:      to,
		Name:    name,
		Subject: fmt.Sprintf("Enrollment confirmed: %s", activity),
		Body:    body,
	})
}

// EnrollmentCancelled queues the email sent after a member gives up a spot.
func (s *Service) EnrollmentCancelled(ctx context.Context, to, name, activity string, startsAt time.Time) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour enrollment in %s on %s has been cancelled.\n\nGymFlow",
		name, activity, startsAt.Format("Monday, 2 Jan 2006 at 15:04"),
	)
	return s.enqueue(ctx, Message{
		Type:    "enrollment_cancelled",
		To:      to,
		Name:    name,
		Subject: fmt.Sprintf("Enrollment cancelled: %s", activity),
		Body:    body,
	})
}

// Send queues an arbitrary email, mostly for operational checks.
func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, Message{
		Type:    "manual",
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
	})
}

func (s *Service) enqueue(ctx context.Context, msg Message) error {
	msg.Created = time.Now()

	data, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("Failed to marshal notification: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue notification to %s: %v", msg.To, err)
		return err
	}

	metrics.NotificationQueueLength.Inc()
	logger.Infof("Notification queued: %s to %s", msg.Subject, msg.To)
	return nil
}

// Start drains the queue until ctx is cancelled. Run it in its own goroutine.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	metrics.NotificationQueueLength.Dec()

	var msg Message
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	msg.Tries++
	if err := s.sendNow(msg); err != nil {
		logger.Errorf("Failed to send notification to %s: %v", msg.To, err)

		if msg.Tries < maxAttempts {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(msg)
			s.redis.LPush(context.Background(), queueKey, data)
			metrics.NotificationQueueLength.Inc()
			logger.Infof("Retrying notification to %s (attempt %d)", msg.To, msg.Tries+1)
		} else {
			metrics.RecordNotification(msg.Type, "failed")
			s.saveFailed(msg, err)
		}
		return
	}

	metrics.RecordNotification(msg.Type, "sent")
	logger.Infof("Notification sent to %s", msg.To)
}

func (s *Service) sendNow(msg Message) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", msg.To)
	message += fmt.Sprintf("Subject: %s\r\n", msg.Subject)
	message += "\r\n" + msg.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{msg.To}, []byte(message))
}

func (s *Service) saveFailed(msg Message, err error) {
	failed := map[string]interface{}{
		"message": msg,
		"error":   err.Error(),
		"time":    time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Notification to %s moved to failed queue after %d attempts", msg.To, msg.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
