package config

import "github.com/oxyno-zeta/http-listener/pkg/http-listener/log"

// Manager
//
//go:generate mockgen -destination=./mocks/mock_Manager.go -package=mocks github.com/oxyno-zeta/http-listener/pkg/http-listener/config Manager
type Manager interface {
	// Load configuration from every file of the given folder
	Load(mainConfDir string) error
	// Get configuration object
	GetConfig() *Config
	// Add on change hook for configuration change
	AddOnChangeHook(hook func())
}

func NewManager(logger log.Logger) Manager {
	return &managercontext{logger: logger}
}
