package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Service struct {
	URL string `yaml:"url"`
}
type Services struct {
	Inference      Service `yaml:"inference"`
	Emotion        Service `yaml:"emotion"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}
type Capture struct {
	IntervalMS      int `yaml:"interval_ms"`
	ReferenceWidth  int `yaml:"reference_width"`
	ReferenceHeight int `yaml:"reference_height"`
	JPEGQuality     int `yaml:"jpeg_quality"`
}
type Report struct {
	Listen     string `yaml:"listen"`
	AssetsHost string `yaml:"assets_host"`
}
type Root struct {
	Session struct {
		Name    string `yaml:"name"`
		LogLvl  string `yaml:"log_level"`
		Outputs string `yaml:"outputs"`
	} `yaml:"session"`
	Services   Services `yaml:"services"`
	Capture    Capture  `yaml:"capture"`
	Vocabulary []string `yaml:"vocabulary"`
	Report     Report   `yaml:"report"`
}

// EnvPrefix prefixes every environment override, e.g. TRUSAI_SERVICES_INFERENCE_URL.
const EnvPrefix = "TRUSAI"

func setDefaults(v *viper.Viper) {
	v.SetDefault("session.name", "trusai")
	v.SetDefault("session.log_level", "info")
	v.SetDefault("session.outputs", "outputs")
	v.SetDefault("services.inference.url", "http://localhost:5000")
	v.SetDefault("services.emotion.url", "")
	v.SetDefault("services.timeout_seconds", 10)
	v.SetDefault("capture.interval_ms", 1000)
	v.SetDefault("capture.reference_width", 640)
	v.SetDefault("capture.reference_height", 480)
	v.SetDefault("capture.jpeg_quality", 90)
	v.SetDefault("vocabulary", []string{"anger", "disgust", "fear", "happy", "neutral", "sad", "surprise"})
	v.SetDefault("report.listen", "")
	v.SetDefault("report.assets_host", "")
}

// New returns a viper instance with defaults and env overrides applied. When
// path is empty the config file is searched in config/<CONFIG_ENV>/ and the
// working directory; a missing file is not an error.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return v, nil
	}

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join("config", env))
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Decode turns the effective viper settings into a Root. The yaml tags name
// the keys, so the same struct reads the file and dumps the effective config.
func Decode(v *viper.Viper) (*Root, error) {
	var cfg Root
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is New followed by Decode.
func Load(path string) (*Root, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

func (c *Root) Validate() error {
	if c.Services.Inference.URL == "" {
		return fmt.Errorf("services.inference.url is required")
	}
	if c.Capture.IntervalMS <= 0 {
		return fmt.Errorf("capture.interval_ms must be positive, got %d", c.Capture.IntervalMS)
	}
	if c.Capture.ReferenceWidth <= 0 || c.Capture.ReferenceHeight <= 0 {
		return fmt.Errorf("capture reference size must be positive, got %dx%d", c.Capture.ReferenceWidth, c.Capture.ReferenceHeight)
	}
	if len(c.Vocabulary) == 0 {
		return fmt.Errorf("vocabulary must not be empty")
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Root) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }

func DurMillis(n int) time.Duration { return time.Duration(n) * time.Millisecond }
