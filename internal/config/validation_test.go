package config

import (
	"errors"
	"testing"
)

// validBaseConfig returns a Config with all required fields set for the
// given provider.
func validBaseConfig(provider string) *Config {
	cfg := &Config{
		Provider:      provider,
		ModelName:     DefaultGeminiModel,
		Temperature:   0.2,
		EmbedderModel: DefaultGeminiEmbedderModel,
		IndexPath:     "data/knowledge_index.json",
		ExamplesPath:  "data/examples.md",
	}
	switch provider {
	case ProviderOllama:
		cfg.ModelName = "llama3.3"
		cfg.EmbedderModel = DefaultOllamaEmbedderModel
		cfg.OllamaHost = "http://localhost:11434"
	case ProviderOpenAI:
		cfg.ModelName = "gpt-4o"
	}
	return cfg
}

func TestValidate_Success(t *testing.T) {
	for _, provider := range []string{ProviderGemini, ProviderOllama, ProviderOpenAI} {
		t.Run(provider, func(t *testing.T) {
			switch provider {
			case ProviderGemini:
				t.Setenv("GEMINI_API_KEY", "test-api-key")
			case ProviderOpenAI:
				t.Setenv("OPENAI_API_KEY", "test-openai-key")
			}

			if err := validBaseConfig(provider).Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Errorf("err = %v, want ErrConfigNil", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := validBaseConfig("anthropic")
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidProvider) {
		t.Errorf("err = %v, want ErrInvalidProvider", err)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := validBaseConfig(ProviderGemini)
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidate_OllamaNeedsNoKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	if err := validBaseConfig(ProviderOllama).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-api-key")

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty model name", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"empty embedder model", func(c *Config) { c.EmbedderModel = "" }, ErrInvalidEmbedderModel},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, ErrInvalidTemperature},
		{"empty index path", func(c *Config) { c.IndexPath = "" }, ErrInvalidIndexPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig(ProviderGemini)
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_OllamaHostRequired(t *testing.T) {
	cfg := validBaseConfig(ProviderOllama)
	cfg.OllamaHost = ""

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidOllamaHost) {
		t.Errorf("err = %v, want ErrInvalidOllamaHost", err)
	}
}

func TestFullModelName(t *testing.T) {
	tests := []struct {
		provider, model, want string
	}{
		{ProviderGemini, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{ProviderOllama, "llama3.3", "ollama/llama3.3"},
		{ProviderOpenAI, "gpt-4o", "openai/gpt-4o"},
		{ProviderGemini, "googleai/gemini-2.5-pro", "googleai/gemini-2.5-pro"},
	}

	for _, tt := range tests {
		cfg := &Config{Provider: tt.provider, ModelName: tt.model}
		if got := cfg.FullModelName(); got != tt.want {
			t.Errorf("FullModelName(%s, %s) = %q, want %q", tt.provider, tt.model, got, tt.want)
		}
	}
}
