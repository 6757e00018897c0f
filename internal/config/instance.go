package config

import (
	"os"

	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

// LoadInstanceInfo loads the running instance info from instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := InstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInstanceInfo saves the running instance info to instance.yaml.
func SaveInstanceInfo(info *models.InstanceInfo) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	path, err := InstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveInstanceInfo removes the instance.yaml file.
func RemoveInstanceInfo() error {
	path, err := InstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}
