package sdk

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/wargadata-dev/warga-store/internal/registry"
	"github.com/wargadata-dev/warga-store/internal/validate"
	"github.com/wargadata-dev/warga-store/pkg/schema"
)

// New initializes a store based on the environment. When
// WARGA_STORE_ADDR names a reachable daemon the remote client is
// returned; otherwise an embedded registry backed by dataDir. Callers
// get the RecordStore interface either way.
func New(dataDir string) (RecordStore, error) {
	if remoteAddr := os.Getenv("WARGA_STORE_ADDR"); remoteAddr != "" {
		client, err := Connect(remoteAddr)
		if err == nil {
			return client, nil
		}
		// Connection failure falls through to embedded mode.
	}

	p, err := registry.NewPersistence(dataDir, log.Default())
	if err != nil {
		return nil, err
	}
	return &embedded{reg: registry.NewRegistry(p.Load(), p)}, nil
}

// embedded wraps the in-process registry so that Add applies the same
// validation the daemon applies for remote clients.
type embedded struct {
	reg *registry.Registry
}

func (e *embedded) Add(name, nationalID, address, amount string) (schema.Record, error) {
	existing, err := e.reg.List()
	if err != nil {
		return schema.Record{}, err
	}
	if err := validate.Validate(name, nationalID, existing); err != nil {
		return schema.Record{}, err
	}
	return e.reg.Add(name, nationalID, address, amount)
}

func (e *embedded) Delete(id int64) error { return e.reg.Delete(id) }

func (e *embedded) DeleteAll() error { return e.reg.DeleteAll() }

func (e *embedded) List() ([]schema.Record, error) { return e.reg.List() }

func (e *embedded) Search(query string) ([]schema.Record, error) { return e.reg.Search(query) }
