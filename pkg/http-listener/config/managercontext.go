package config

import (
	"os"
	"path"
	"strings"
	"sync"

	"emperror.dev/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/spf13/viper"
	"github.com/thoas/go-funk"
)

var validate = validator.New()

type managercontext struct {
	cfg           *Config
	configs       []*viper.Viper
	onChangeHooks []func()
	logger        log.Logger
	// Credential file watchers of the current configuration
	credWatchers []*fileWatcher
	mutex        sync.RWMutex
	hooksMutex   sync.Mutex
	// Several files can change at once, loads run one at a time
	loadMutex sync.Mutex
}

func (ctx *managercontext) AddOnChangeHook(hook func()) {
	ctx.hooksMutex.Lock()
	defer ctx.hooksMutex.Unlock()

	ctx.onChangeHooks = append(ctx.onChangeHooks, hook)
}

// runHooks calls hooks in registration order.
func (ctx *managercontext) runHooks() {
	ctx.hooksMutex.Lock()
	hooks := append([]func(){}, ctx.onChangeHooks...)
	ctx.hooksMutex.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

func (ctx *managercontext) Load(mainConfDir string) error {
	// List files
	files, err := os.ReadDir(mainConfDir)
	if err != nil {
		return errors.WithStack(err)
	}

	// Generate viper instances for static configs
	ctx.configs = generateViperInstances(files, mainConfDir)

	// Load configuration
	err = ctx.loadConfiguration()
	if err != nil {
		return err
	}

	// Loop over config files
	funk.ForEach(ctx.configs, func(vip *viper.Viper) {
		// Add hooks for on change events
		vip.OnConfigChange(func(in fsnotify.Event) {
			ctx.logger.Infof("Reload configuration detected for file %s", vip.ConfigFileUsed())

			// Reload config
			err2 := ctx.loadConfiguration()
			if err2 != nil {
				ctx.logger.Error(err2)
				// Stop here and do not call hooks => configuration is unstable
				return
			}

			ctx.runHooks()
		})
		// Watch for configuration changes
		vip.WatchConfig()
	})

	return nil
}

func (*managercontext) loadDefaultConfigurationValues(vip *viper.Viper) {
	// Load default configuration
	vip.SetDefault("log.level", DefaultLogLevel)
	vip.SetDefault("log.format", DefaultLogFormat)
	vip.SetDefault("server.port", DefaultPort)
	vip.SetDefault("server.timeouts.readHeaderTimeout", DefaultServerTimeoutsReadHeaderTimeout)
	vip.SetDefault("server.timeouts.idleTimeout", DefaultServerTimeoutsIdleTimeout)
	vip.SetDefault("internalServer.port", DefaultInternalPort)
	vip.SetDefault("internalServer.timeouts.readHeaderTimeout", DefaultServerTimeoutsReadHeaderTimeout)
	vip.SetDefault("request.drainBufferSize", DefaultRequestDrainBufferSize)
	vip.SetDefault("request.drainReadTimeout", DefaultRequestDrainReadTimeout)
	vip.SetDefault("request.maxHeaderLines", DefaultRequestMaxHeaderLines)
	vip.SetDefault("request.maxLineLength", DefaultRequestMaxLineLength)
	vip.SetDefault("templates.helpers", []string{DefaultTemplateHelpersPath})
	vip.SetDefault("templates.error.path", DefaultTemplateErrorPath)
	vip.SetDefault("templates.error.headers", DefaultTemplateErrorHeaders)
	vip.SetDefault("templates.echo.path", DefaultTemplateEchoPath)
	vip.SetDefault("templates.echo.headers", DefaultTemplateEchoHeaders)
}

func generateViperInstances(files []os.DirEntry, mainConfDir string) []*viper.Viper {
	list := make([]*viper.Viper, 0)
	// Loop over static files to create viper instance for them
	funk.ForEach(files, func(file os.DirEntry) {
		filename := file.Name()
		// Create config file name
		cfgFileName := strings.TrimSuffix(filename, path.Ext(filename))
		// Ignore hidden files like .keep and directories
		if !strings.HasPrefix(filename, ".") && cfgFileName != "" && !file.IsDir() {
			vip := viper.New()
			vip.SetConfigName(cfgFileName)
			vip.AddConfigPath(mainConfDir)
			list = append(list, vip)
		}
	})

	return list
}

func (ctx *managercontext) loadConfiguration() error {
	ctx.loadMutex.Lock()
	defer ctx.loadMutex.Unlock()

	// Create a viper instance for default value and merging
	globalViper := viper.New()

	// Put default values
	ctx.loadDefaultConfigurationValues(globalViper)

	// Loop over configs
	for _, vip := range ctx.configs {
		err := vip.ReadInConfig()
		if err != nil {
			return errors.WithStack(err)
		}

		err = globalViper.MergeConfigMap(vip.AllSettings())
		if err != nil {
			return errors.WithStack(err)
		}
	}

	// Prepare configuration object
	var out Config
	// Quick unmarshal.
	err := globalViper.Unmarshal(&out)
	if err != nil {
		return errors.WithStack(err)
	}

	// Load default values
	loadBusinessDefaultValues(&out)

	// Configuration validation
	err = validate.Struct(out)
	if err != nil {
		return errors.WithStack(err)
	}

	// Load all credentials
	credentials, err := loadAllCredentials(&out)
	if err != nil {
		return err
	}

	err = validateBusinessConfig(&out)
	if err != nil {
		return err
	}

	ctx.mutex.Lock()
	ctx.cfg = &out
	ctx.mutex.Unlock()

	ctx.watchCredentials(credentials)

	return nil
}

// watchCredentials replaces credential file watchers so certificate
// rotation reloads the servers.
func (ctx *managercontext) watchCredentials(credentials []*CredentialConfig) {
	for _, w := range ctx.credWatchers {
		w.Stop()
	}

	ctx.credWatchers = nil

	for _, cred := range credentials {
		if cred.Path == "" {
			continue
		}

		cred := cred

		w, err := watchFile(ctx.logger, cred.Path, func() {
			ctx.logger.Infof("Reload credential file detected for path %s", cred.Path)

			err := loadCredential(cred)
			if err != nil {
				ctx.logger.Error(err)
				// Configuration is unstable, hooks are not called
				return
			}

			ctx.runHooks()
		})
		if err != nil {
			ctx.logger.WithError(err).Errorf("credential file %s cannot be watched", cred.Path)

			continue
		}

		ctx.credWatchers = append(ctx.credWatchers, w)
	}
}

// GetConfig allow to get configuration object.
func (ctx *managercontext) GetConfig() *Config {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()

	return ctx.cfg
}

func loadAllCredentials(out *Config) ([]*CredentialConfig, error) {
	result := make([]*CredentialConfig, 0)

	for _, srv := range []*ServerConfig{out.Server, out.InternalServer} {
		if srv == nil || srv.SSL == nil {
			continue
		}

		for _, cert := range srv.SSL.Certificates {
			for _, cred := range []*CredentialConfig{cert.Certificate, cert.PrivateKey} {
				err := loadCredential(cred)
				if err != nil {
					return nil, err
				}

				result = append(result, cred)
			}
		}
	}

	return result, nil
}

func loadCredential(credCfg *CredentialConfig) error {
	if credCfg.Path != "" {
		// Secret file
		databytes, err := os.ReadFile(credCfg.Path)
		if err != nil {
			return errors.WithStack(err)
		}

		credCfg.Value = string(databytes)
	} else if credCfg.Env != "" {
		// Environment variable
		envValue := os.Getenv(credCfg.Env)
		if envValue == "" {
			return errors.Errorf(TemplateErrLoadingEnvCredentialEmpty, credCfg.Env)
		}

		credCfg.Value = envValue
	}

	return nil
}

func loadBusinessDefaultValues(out *Config) {
	// Manage default value for tracing
	if out.Tracing == nil {
		out.Tracing = &TracingConfig{Enabled: false}
	}

	// Defaults when not built by viper
	if out.Request == nil {
		out.Request = &RequestConfig{
			DrainBufferSize:  DefaultRequestDrainBufferSize,
			DrainReadTimeout: DefaultRequestDrainReadTimeout,
			MaxHeaderLines:   DefaultRequestMaxHeaderLines,
			MaxLineLength:    DefaultRequestMaxLineLength,
		}
	}

	// Lowercase hosts, matching is case insensitive
	out.Request.AllowedHosts = funk.Map(out.Request.AllowedHosts, strings.ToLower).([]string)

	// Manage default headers for overridden templates
	if out.Templates != nil && out.Templates.Error != nil && out.Templates.Error.Headers == nil {
		out.Templates.Error.Headers = DefaultTemplateErrorHeaders
	}

	if out.Templates != nil && out.Templates.Echo != nil && out.Templates.Echo.Headers == nil {
		out.Templates.Echo.Headers = DefaultTemplateEchoHeaders
	}
}
