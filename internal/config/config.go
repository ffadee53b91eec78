package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Content    ContentConfig    `mapstructure:"content"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// DictionaryConfig selects the word nodes of the dictionary and how they are matched.
type DictionaryConfig struct {
	ParentNodes []int64 `mapstructure:"parent_nodes" validate:"dive,gt=0"`
	// Classes maps a class identifier to "keyword_attribute;description_attribute".
	// An empty keyword attribute means the node name is the keyword.
	Classes       map[string]string `mapstructure:"classes"`
	CaseSensitive bool              `mapstructure:"case_sensitive"`
	OmitTags      []string          `mapstructure:"omit_tags" validate:"dive,tagname"`
}

type CacheConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
	Path      string `mapstructure:"path" validate:"required"`
}

// FullPath is the directory cache files are written to.
func (c CacheConfig) FullPath() string {
	return filepath.Join(c.Directory, c.Path)
}

type ContentConfig struct {
	Source string `mapstructure:"source" validate:"oneof=yaml mysql"`
	File   string `mapstructure:"file"`
}

type TemplatesConfig struct {
	TooltipTemplate string `mapstructure:"tooltip_template" validate:"omitempty,file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/keytip")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("dictionary.parent_nodes", []int64{})
	v.SetDefault("dictionary.classes", map[string]string{})
	v.SetDefault("dictionary.case_sensitive", false)
	v.SetDefault("dictionary.omit_tags", []string{"a", "script", "style", "textarea", "title"})
	v.SetDefault("cache.directory", filepath.Join("var", "cache"))
	v.SetDefault("cache.path", "dictionary")
	v.SetDefault("content.source", "yaml")
	v.SetDefault("content.file", "content.yml")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.tooltip_template", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
