package go_machinetalk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type AppState struct {
	sync.Mutex `json:"-"`

	path string

	// ServiceUUID identifies this installation across restarts, it is
	// announced as the uuid= text record.
	ServiceUUID string `json:"service_uuid"`
}

func (s *AppState) Read(stateDir string) error {
	s.path = filepath.Join(stateDir, "state.json")

	if content, err := os.ReadFile(s.path); err == nil {
		if err := json.Unmarshal(content, &s); err != nil {
			return fmt.Errorf("failed unmarshalling state file: %w", err)
		}
		log.Debugf("app state loaded")
	} else {
		log.Debugf("no app state found")
	}

	if len(s.ServiceUUID) > 0 {
		if _, err := uuid.Parse(s.ServiceUUID); err != nil {
			return fmt.Errorf("invalid service uuid in state file: %w", err)
		}
	}

	return nil
}

// EnsureServiceUUID returns the persisted service UUID, generating and
// storing a new one if none exists yet.
func (s *AppState) EnsureServiceUUID() (string, error) {
	s.Lock()
	if len(s.ServiceUUID) > 0 {
		defer s.Unlock()
		return s.ServiceUUID, nil
	}

	id := uuid.New().String()
	s.ServiceUUID = id
	s.Unlock()

	log.Infof("generated new service uuid %s", id)
	if err := s.Write(); err != nil {
		return "", err
	}

	return id, nil
}

func (s *AppState) Write() error {
	s.Lock()
	defer s.Unlock()

	// Create a temporary file, and overwrite the old file.
	// This is a way to atomically replace files.
	// The file is created with mode 0o600 so we don't need to change the mode.
	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed creating temporary file for app state: %w", err)
	}

	if err := json.NewEncoder(tmpFile).Encode(&s); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed writing marshalled app state: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed closing app state file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), s.path); err != nil {
		return fmt.Errorf("failed replacing app state file: %w", err)
	}

	return nil
}
