package util

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"log"
	"os"
	"strconv"
)

const Name = "trustnet"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host       string
		SshPort    int    `yaml:"sshPort"`
		HttpPort   int    `yaml:"httpPort"`
		ApiBaseUrl string `yaml:"apiBaseUrl"`
		WithStub   bool   `yaml:"withStub"`
		WithSsh    bool   `yaml:"withSsh"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	var buf []byte
	var err error

	// Try to read from resolved path
	buf, err = os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, use embedded config and create user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		// Try to write default config to user config directory
		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envHost := os.Getenv("TRUSTNET_HOST")
	envSshPort := os.Getenv("TRUSTNET_SSHPORT")
	envHttpPort := os.Getenv("TRUSTNET_HTTPPORT")
	envApiBaseUrl := os.Getenv("TRUSTNET_APIBASEURL")
	envWithStub := os.Getenv("TRUSTNET_WITH_STUB")
	envWithSsh := os.Getenv("TRUSTNET_WITH_SSH")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envSshPort != "" {
		v, err := strconv.Atoi(envSshPort)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.SshPort = v
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.HttpPort = v
	}

	if envApiBaseUrl != "" {
		c.Conf.ApiBaseUrl = envApiBaseUrl
	}

	if envWithStub == "true" {
		c.Conf.WithStub = true
	}

	if envWithSsh == "true" {
		c.Conf.WithSsh = true
	}

	return c, nil
}

// ApiBaseUrlOrDefault returns the configured auth backend base URL, falling
// back to the bundled stub server when none is set.
func (c *AppConfig) ApiBaseUrlOrDefault() string {
	if c.Conf.ApiBaseUrl != "" {
		return c.Conf.ApiBaseUrl
	}
	return fmt.Sprintf("http://%s:%d/api", c.Conf.Host, c.Conf.HttpPort)
}
