package main

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Conceptual-Machines/mindloop/internal/cliconfig"
	"github.com/Conceptual-Machines/mindloop/internal/client"
	"github.com/Conceptual-Machines/mindloop/internal/speech"
)

const requestTimeout = 30 * time.Second

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce sync.Once
	config     *cliconfig.Config
	configPath string
	configErr  error
}

// newSpeechEngine is replaced in tests.
var newSpeechEngine = func(command string) speech.Engine {
	return speech.NewCommandEngine(command)
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
	}
}

func (c *commandContext) ensureConfig() (*cliconfig.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := cliconfig.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) serverURL() string {
	if c.serverFlag != nil {
		if flag := strings.TrimSpace(*c.serverFlag); flag != "" {
			return strings.TrimRight(flag, "/")
		}
	}
	if c.config != nil {
		return c.config.ServerURL
	}
	return ""
}

func (c *commandContext) apiClient() client.API {
	return client.NewHTTPClient(c.serverURL(), &http.Client{Timeout: requestTimeout})
}

func (c *commandContext) sequencer(observer speech.Observer) *speech.Sequencer {
	cfg := c.config
	if cfg == nil {
		def := cliconfig.Default()
		cfg = &def
	}
	return speech.NewSequencer(newSpeechEngine(cfg.Speech.Command), cfg.SpeechConfig(), observer)
}
