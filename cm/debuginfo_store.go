package cm

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// objectRecord is the persisted row for one entity's registered address
// range, mirroring DebugInfo.byEntity: plain struct tags, string
// primary key, explicit column types. Meta is an optional JSON blob a
// front end can attach (e.g. a symbol's mangled name, DWARF tag, or
// originating compilation unit) — cm itself never populates it.
type objectRecord struct {
	EntityID string         `gorm:"primaryKey;type:varchar(36)"`
	Address  uint64         `gorm:"uniqueIndex;not null"`
	Size     uint64         `gorm:"not null"`
	Meta     datatypes.JSON `gorm:"type:jsonb"`
}

func (objectRecord) TableName() string { return "cm_objects" }

// symbolRecord is the persisted row for one pure (non-entity) symbol.
type symbolRecord struct {
	Address uint64 `gorm:"primaryKey"`
	Name    string `gorm:"type:varchar(255);not null"`
	Size    uint64 `gorm:"not null"`
}

func (symbolRecord) TableName() string { return "cm_symbols" }

// typeRecord is the persisted row for one type's debug-info size,
// mirroring DebugInfo.typeSizes.
type typeRecord struct {
	TypeID string `gorm:"primaryKey;type:varchar(36)"`
	Size   uint64 `gorm:"not null"`
}

func (typeRecord) TableName() string { return "cm_types" }

// DebugInfoStore persists a DebugInfo sink to SQLite (optionally a
// remote libsql/Turso target), so debug info gathered in one process
// can be reloaded by another without rebuilding the code model. It is
// an optional adjunct to the in-memory DebugInfo, not a replacement —
// callers populate DebugInfo during a build and flush it here when they
// need the sink to outlive the process.
type DebugInfoStore struct {
	db *gorm.DB
}

// OpenDebugInfoStore connects to the given SQLite DSN — a file path, or
// a libsql:// / https:// URL for a remote Turso target — and ensures
// the schema exists. The auth token for a remote target, if any, comes
// from the CM_LIBSQL_AUTH_TOKEN environment variable.
func OpenDebugInfoStore(dsn string, debug bool) (*DebugInfoStore, error) {
	if !isRemoteDSN(dsn) {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if _, err := os.Stat(dsn); os.IsNotExist(err) {
				if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
					return nil, fmt.Errorf("cm: failed to create debug-info store directory: %w", mkErr)
				}
			}
		}
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isRemoteDSN(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv("CM_LIBSQL_AUTH_TOKEN"); token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("cm: failed to create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("cm: failed to open debug-info store: %w", err)
	}
	if err := db.AutoMigrate(&objectRecord{}, &symbolRecord{}, &typeRecord{}); err != nil {
		return nil, fmt.Errorf("cm: debug-info store migration failed: %w", err)
	}
	return &DebugInfoStore{db: db}, nil
}

// isRemoteDSN reports whether dsn names a remote libsql/Turso target
// rather than a local SQLite file.
func isRemoteDSN(dsn string) bool {
	return len(dsn) >= 8 && (dsn[:7] == "http://" || dsn[:8] == "https://" || (len(dsn) >= 6 && dsn[:6] == "libsql"))
}

// Flush persists every object and symbol currently held by d, replacing
// whatever was previously stored for those keys.
func (s *DebugInfoStore) Flush(d *DebugInfo) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for id, info := range d.byEntity {
			rec := objectRecord{EntityID: id.String(), Address: info.Address, Size: info.Size}
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("cm: failed to persist object for entity %s: %w", id, err)
			}
		}
		for addr, sym := range d.symbols {
			rec := symbolRecord{Address: addr, Name: sym.Name, Size: sym.Size}
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("cm: failed to persist symbol at %#x: %w", addr, err)
			}
		}
		for id, sz := range d.typeSizes {
			rec := typeRecord{TypeID: id.String(), Size: sz}
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("cm: failed to persist type size for %s: %w", id, err)
			}
		}
		return nil
	})
}

// SetMeta attaches an arbitrary JSON blob to an already-persisted
// object row, for a front end that wants to remember something about
// the entity beyond its address and size.
func (s *DebugInfoStore) SetMeta(entityID string, meta datatypes.JSON) error {
	return s.db.Model(&objectRecord{}).Where("entity_id = ?", entityID).Update("meta", meta).Error
}

// LoadObjects returns every persisted (entityID, address, size) triple,
// for a caller to re-associate with live entities by id.
func (s *DebugInfoStore) LoadObjects() ([]struct {
	EntityID string
	Address  uint64
	Size     uint64
}, error) {
	var rows []objectRecord
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cm: failed to load objects: %w", err)
	}
	out := make([]struct {
		EntityID string
		Address  uint64
		Size     uint64
	}, len(rows))
	for i, r := range rows {
		out[i].EntityID = r.EntityID
		out[i].Address = r.Address
		out[i].Size = r.Size
	}
	return out, nil
}

// LoadSymbols returns every persisted pure symbol, keyed by address.
func (s *DebugInfoStore) LoadSymbols() (map[uint64]Symbol, error) {
	var rows []symbolRecord
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cm: failed to load symbols: %w", err)
	}
	out := make(map[uint64]Symbol, len(rows))
	for _, r := range rows {
		out[r.Address] = Symbol{Name: r.Name, Size: r.Size}
	}
	return out, nil
}

// LoadTypeSizes returns every persisted (typeID, size) pair, for a
// caller to re-associate with live types by id.
func (s *DebugInfoStore) LoadTypeSizes() (map[string]uint64, error) {
	var rows []typeRecord
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cm: failed to load type sizes: %w", err)
	}
	out := make(map[string]uint64, len(rows))
	for _, r := range rows {
		out[r.TypeID] = r.Size
	}
	return out, nil
}

// Close releases the underlying database connection.
func (s *DebugInfoStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
