package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTooManyRequests = errors.New("code already sent, wait before requesting again")
	ErrCodeInvalid     = errors.New("invalid or expired code")
)

const (
	codeTTL     = 5 * time.Minute
	cooldownTTL = 60 * time.Second
)

// Store keeps one-time login codes in Redis. A code lives for five minutes
// and a phone may request at most one code per minute.
type Store struct {
	redis *redis.Client
}

func New(redisAddr string) *Store {
	return &Store{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
	}
}

func NewWithClient(rdb *redis.Client) *Store {
	return &Store{redis: rdb}
}

func codeKey(phone string) string     { return "otp:" + phone }
func cooldownKey(phone string) string { return "otp:" + phone + ":cooldown" }

// Issue generates and stores a six-digit code for the phone number. The code
// is returned to the caller for delivery.
func (s *Store) Issue(ctx context.Context, phone string) (string, error) {
	ok, err := s.redis.SetNX(ctx, cooldownKey(phone), "1", cooldownTTL).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrTooManyRequests
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, codeKey(phone), code, codeTTL).Err(); err != nil {
		return "", err
	}

	return code, nil
}

// Verify consumes the stored code. A code can be used only once; wrong and
// expired codes are indistinguishable to the caller.
func (s *Store) Verify(ctx context.Context, phone, code string) error {
	stored, err := s.redis.GetDel(ctx, codeKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeInvalid
	}
	if err != nil {
		return err
	}

	if stored != code {
		return ErrCodeInvalid
	}

	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
