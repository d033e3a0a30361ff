package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/reporter/internal/xdg"
)

const (
	AppName        = "reporter"
	ConfigFileName = "reporter.toml"

	DefaultTimeout     = 30 * time.Second
	DefaultNatsSubject = "handin.progress"
	DefaultAwsRegion   = "eu-central-1"
)

type EnvConfig struct {
	ApiBaseUrl  string
	RailgunRoot string
	HandinId    string
	HomeworkId  string
	Timeout     time.Duration

	NatsUrl     string
	NatsSubject string
	SqsUrl      string
	AwsRegion   string
}

// FileConfig is the layout of reporter.toml.
type FileConfig struct {
	Api struct {
		BaseUrl string `toml:"base_url"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Notify struct {
		NatsUrl     string `toml:"nats_url"`
		NatsSubject string `toml:"nats_subject"`
		SqsUrl      string `toml:"sqs_url"`
		AwsRegion   string `toml:"aws_region"`
	} `toml:"notify"`
}

// ReadEnvConfig assembles the configuration from, in increasing priority,
// built-in defaults, reporter.toml from the XDG config dirs and the process
// environment. envFile, when set, is loaded into the environment first and
// must exist; otherwise a .env in the working directory is loaded if present.
func ReadEnvConfig(envFile string) (*EnvConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	result := &EnvConfig{
		Timeout:     DefaultTimeout,
		NatsSubject: DefaultNatsSubject,
		AwsRegion:   DefaultAwsRegion,
	}

	path, err := xdg.NewXDGDirs().FindConfigFile(AppName, ConfigFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", ConfigFileName, err)
	}
	if path != "" {
		fc, err := ReadFileConfig(path)
		if err != nil {
			return nil, err
		}
		if err := result.apply(fc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := result.applyEnv(); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

func ReadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var fc FileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML %s: %w", path, err)
	}
	return &fc, nil
}

func (c *EnvConfig) apply(fc *FileConfig) error {
	setIfNotEmpty(&c.ApiBaseUrl, fc.Api.BaseUrl)
	setIfNotEmpty(&c.NatsUrl, fc.Notify.NatsUrl)
	setIfNotEmpty(&c.NatsSubject, fc.Notify.NatsSubject)
	setIfNotEmpty(&c.SqsUrl, fc.Notify.SqsUrl)
	setIfNotEmpty(&c.AwsRegion, fc.Notify.AwsRegion)
	if fc.Api.Timeout != "" {
		d, err := time.ParseDuration(fc.Api.Timeout)
		if err != nil {
			return fmt.Errorf("invalid api.timeout: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *EnvConfig) applyEnv() error {
	setIfNotEmpty(&c.ApiBaseUrl, os.Getenv("RAILGUN_API_BASEURL"))
	setIfNotEmpty(&c.RailgunRoot, os.Getenv("RAILGUN_ROOT"))
	setIfNotEmpty(&c.HandinId, os.Getenv("RAILGUN_HANDID"))
	setIfNotEmpty(&c.HomeworkId, os.Getenv("RAILGUN_HWID"))
	setIfNotEmpty(&c.NatsUrl, os.Getenv("REPORTER_NATS_URL"))
	setIfNotEmpty(&c.NatsSubject, os.Getenv("REPORTER_NATS_SUBJECT"))
	setIfNotEmpty(&c.SqsUrl, os.Getenv("REPORTER_SQS_URL"))
	setIfNotEmpty(&c.AwsRegion, os.Getenv("REPORTER_AWS_REGION"))
	if s := os.Getenv("REPORTER_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid REPORTER_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the settings every run needs.
func (c *EnvConfig) Validate() error {
	var errs []error
	if c.ApiBaseUrl == "" {
		errs = append(errs, errors.New("RAILGUN_API_BASEURL is not set"))
	}
	if c.RailgunRoot == "" {
		errs = append(errs, errors.New("RAILGUN_ROOT is not set"))
	}
	if c.HandinId == "" {
		errs = append(errs, errors.New("RAILGUN_HANDID is not set"))
	} else if err := uuid.Validate(c.HandinId); err != nil {
		errs = append(errs, fmt.Errorf("RAILGUN_HANDID %q is not a uuid: %w", c.HandinId, err))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	return errors.Join(errs...)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
