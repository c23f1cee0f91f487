package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/moby/sys/atomicwriter"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/uiports/internal/model"
	"github.com/shinji-kodama/uiports/internal/paths"
	"github.com/shinji-kodama/uiports/internal/port"
)

const (
	// filePerm is the mode of the mapping file.
	filePerm = 0o644

	// dirPerm is the mode used when the data root has to be created on
	// first save.
	dirPerm = 0o755
)

// PortMapping is the durable application → port mapping.
//
// The in-memory map and the file are kept consistent by rewriting the whole
// file after every mutation. A PortMapping is not safe for concurrent use,
// and two processes sharing one file race: the last writer wins.
type PortMapping struct {
	path     string
	ports    map[string]uint16
	provider port.Provider
	logger   *slog.Logger
}

// Option configures a PortMapping at load time.
type Option func(*PortMapping)

// WithProvider replaces the port provider used by AssignPort.
func WithProvider(p port.Provider) Option {
	return func(m *PortMapping) {
		if p != nil {
			m.provider = p
		}
	}
}

// WithLogger sets the logger used for debug records. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *PortMapping) {
		if l != nil {
			m.logger = l
		}
	}
}

// Load reads the mapping persisted under dataRoot.
//
// A missing file yields an empty mapping and creates nothing on disk.
// Content that does not decode as a mapping of identifiers to ports fails
// with model.ErrMalformedData; any other read failure with model.ErrIO.
func Load(dataRoot string, opts ...Option) (*PortMapping, error) {
	m := &PortMapping{
		path:     paths.MappingFile(dataRoot),
		ports:    make(map[string]uint16),
		provider: port.EphemeralProvider(port.DefaultHost),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("no port mapping file, starting empty", "path", m.path)
			return m, nil
		}
		return nil, model.NewMappingError(model.ErrIO, "load", m.path, err)
	}

	ports, err := decode(data)
	if err != nil {
		return nil, model.NewMappingError(model.ErrMalformedData, "load", m.path, err)
	}
	m.ports = ports

	m.logger.Debug("loaded port mapping", "path", m.path, "apps", len(m.ports))
	return m, nil
}

// Path returns the location of the mapping file.
func (m *PortMapping) Path() string {
	return m.path
}

// Len returns the number of mapped applications.
func (m *PortMapping) Len() int {
	return len(m.ports)
}

// PortForApp returns the port assigned to appID, if any.
func (m *PortMapping) PortForApp(appID string) (uint16, bool) {
	p, ok := m.ports[appID]
	return p, ok
}

// Entries returns all pairs sorted by application identifier.
func (m *PortMapping) Entries() []model.PortEntry {
	entries := make([]model.PortEntry, 0, len(m.ports))
	for appID, p := range m.ports {
		entries = append(entries, model.PortEntry{AppID: appID, Port: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AppID < entries[j].AppID
	})
	return entries
}

// AssignPort allocates a fresh unused port for appID, replacing any port it
// held before, and persists the mapping.
//
// If the provider fails the mapping is left untouched and the error is
// model.ErrNoPortsAvailable. If persisting fails the in-memory mapping has
// already changed: the caller must reload before trusting it again.
func (m *PortMapping) AssignPort(appID string) (uint16, error) {
	p, err := m.provider()
	if err != nil {
		return 0, model.NewMappingError(model.ErrNoPortsAvailable, "assign", "", err)
	}
	if p == 0 {
		return 0, model.NewMappingError(model.ErrNoPortsAvailable, "assign", "", errors.New("provider returned port 0"))
	}

	previous, had := m.ports[appID]
	m.ports[appID] = p

	if err := m.save(); err != nil {
		return 0, err
	}

	if had {
		m.logger.Debug("reassigned port", "app", appID, "port", p, "previous", previous)
	} else {
		m.logger.Debug("assigned port", "app", appID, "port", p)
	}
	return p, nil
}

// RemoveApp drops appID from the mapping and persists it. Removing an
// identifier that is not mapped is not an error; the file is still
// rewritten.
func (m *PortMapping) RemoveApp(appID string) error {
	delete(m.ports, appID)

	if err := m.save(); err != nil {
		return err
	}

	m.logger.Debug("removed app", "app", appID)
	return nil
}

// save replaces the mapping file with the full current mapping. The write
// goes to a temporary file in the same directory that is then renamed over
// the target, so readers never observe a partially written file.
func (m *PortMapping) save() error {
	data, err := encode(m.ports)
	if err != nil {
		return model.NewMappingError(model.ErrSerialization, "save", m.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), dirPerm); err != nil {
		return model.NewMappingError(model.ErrIO, "save", m.path, err)
	}
	if err := atomicwriter.WriteFile(m.path, data, filePerm); err != nil {
		return model.NewMappingError(model.ErrIO, "save", m.path, err)
	}

	m.logger.Debug("saved port mapping", "path", m.path, "apps", len(m.ports))
	return nil
}

// decode parses the mapping file. An empty or null document is an empty
// mapping. Every value must be a plain YAML integer: yaml.v3 would
// otherwise truncate a float such as 51423.9 into a uint16.
func decode(data []byte) (map[string]uint16, error) {
	ports := make(map[string]uint16)
	if len(bytes.TrimSpace(data)) == 0 {
		return ports, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := &doc
	if root.Kind == 0 {
		// Comments only, no document.
		return ports, nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return ports, nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		// "~" or "null".
		return ports, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of application identifiers to ports", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" {
			return nil, fmt.Errorf("line %d: port of %q is not an integer", value.Line, key.Value)
		}
	}

	if err := root.Decode(&ports); err != nil {
		return nil, err
	}
	for appID, p := range ports {
		if p == 0 {
			return nil, fmt.Errorf("application %q has port 0", appID)
		}
	}
	return ports, nil
}

// encode renders the mapping as YAML. yaml.v3 sorts map keys, so the same
// mapping always produces the same bytes.
func encode(ports map[string]uint16) ([]byte, error) {
	return yaml.Marshal(ports)
}
