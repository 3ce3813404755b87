package mailkit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds email service configuration.
// PostmarkServerToken and PostmarkAccountToken are required only when the
// default Postmark-backed sender is used; services constructed with a custom
// sender (WithSender/WithSenderFactory) may leave them empty.
// SenderEmail establishes the default sender identity for all outbound
// emails; requests may override it per send.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
	MaskEmails           bool   `env:"MASK_EMAILS" envDefault:"false"`
}

// Validate checks the configuration fields that every service requires.
func (c Config) Validate() error {
	if c.SenderEmail == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !ValidAddress(c.SenderEmail) {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if c.SupportEmail != "" && !ValidAddress(c.SupportEmail) {
		return fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}

var defaultEnvLoaded sync.Once

// LoadConfig parses environment variables into a configuration struct based
// on its field tags. The default .env file is loaded once per process before
// the first parse; a missing .env file is not an error.
func LoadConfig[T any]() (T, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file might not exist and that's ok.
		_ = godotenv.Load()
	})

	var cfg T
	if err := env.Parse(&cfg); err != nil {
		var zero T
		return zero, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// MustLoadConfig works like LoadConfig but panics if parsing fails.
// Useful for configurations required for the application to start.
func MustLoadConfig[T any]() T {
	cfg, err := LoadConfig[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
