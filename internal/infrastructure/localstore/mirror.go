// Package localstore keeps an offline copy of writes the primary store could
// not accept, one JSON array per entity type.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LocalIDPrefix marks ids generated by the mirror rather than a backend.
const LocalIDPrefix = "local_"

type Mirror struct {
	dir    string
	prefix string
	log    *logrus.Logger
	mu     sync.Mutex
	now    func() time.Time
}

func NewMirror(dir, prefix string, log *logrus.Logger) *Mirror {
	return &Mirror{
		dir:    dir,
		prefix: prefix,
		log:    log,
		now:    time.Now,
	}
}

// Path is the file holding records of one entity type.
func (m *Mirror) Path(entityName string) string {
	return filepath.Join(m.dir, m.prefix+entityName+".json")
}

// Save appends record to the entity's array and returns its id. Records
// without an id get a local_<uuid> one.
func (m *Mirror) Save(entityName string, record any) (string, error) {
	doc, err := toDocument(record)
	if err != nil {
		return "", err
	}

	id, _ := doc["id"].(string)
	if id == "" {
		id = LocalIDPrefix + uuid.NewString()
		doc["id"] = id
	}
	doc["mirrored_at"] = m.now().UTC().Format(time.RFC3339)

	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.read(entityName)
	if err != nil {
		return "", err
	}
	records = append(records, doc)
	if err := m.write(entityName, records); err != nil {
		return "", err
	}

	m.log.Infof("Mirrored %s %s to local storage", entityName, id)
	return id, nil
}

func (m *Mirror) List(entityName string) ([]map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read(entityName)
}

func (m *Mirror) read(entityName string) ([]map[string]any, error) {
	raw, err := os.ReadFile(m.Path(entityName))
	if errors.Is(err, fs.ErrNotExist) {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local mirror: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode local mirror %s: %w", entityName, err)
	}
	return records, nil
}

// write replaces the file through a rename so a crash never leaves half an array.
func (m *Mirror) write(entityName string, records []map[string]any) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create local mirror dir: %w", err)
	}

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local mirror: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, m.prefix+entityName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write local mirror: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write local mirror: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write local mirror: %w", err)
	}
	return os.Rename(tmp.Name(), m.Path(entityName))
}

func toDocument(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("record is not an object: %w", err)
	}
	return doc, nil
}
