package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/pattarav/supportline/agent/contract"
	openrouterx "github.com/pattarav/supportline/pkg/openrouter"
)

// Config is the classifier model configuration, with optional per-stage model
// and temperature overrides. Absent overrides fall back to the defaults; a
// temperature override below zero means "not set".
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	TriageModel          string  `envconfig:"TRIAGE_MODEL" split_words:"true"`
	BillingModel         string  `envconfig:"BILLING_MODEL" split_words:"true"`
	TechnicalModel       string  `envconfig:"TECHNICAL_MODEL" split_words:"true"`
	GeneralModel         string  `envconfig:"GENERAL_MODEL" split_words:"true"`
	TriageTemperature    float32 `envconfig:"TRIAGE_TEMPERATURE" split_words:"true" default:"-1"`
	BillingTemperature   float32 `envconfig:"BILLING_TEMPERATURE" split_words:"true" default:"-1"`
	TechnicalTemperature float32 `envconfig:"TECHNICAL_TEMPERATURE" split_words:"true" default:"-1"`
	GeneralTemperature   float32 `envconfig:"GENERAL_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the effective client config for a classifier stage.
func (c Config) OpenRouterFor(stage contractx.Stage) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch stage {
	case contractx.StageTriage:
		if v := strings.TrimSpace(c.TriageModel); v != "" {
			modelName = v
		}
		if c.TriageTemperature >= 0 {
			temp = c.TriageTemperature
		}
	case contractx.StageBilling:
		if v := strings.TrimSpace(c.BillingModel); v != "" {
			modelName = v
		}
		if c.BillingTemperature >= 0 {
			temp = c.BillingTemperature
		}
	case contractx.StageTechnical:
		if v := strings.TrimSpace(c.TechnicalModel); v != "" {
			modelName = v
		}
		if c.TechnicalTemperature >= 0 {
			temp = c.TechnicalTemperature
		}
	case contractx.StageGeneral:
		if v := strings.TrimSpace(c.GeneralModel); v != "" {
			modelName = v
		}
		if c.GeneralTemperature >= 0 {
			temp = c.GeneralTemperature
		}
	}

	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: c.MaxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
