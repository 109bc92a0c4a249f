package store

import (
	"fmt"
	"strings"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
)

// OpenRepository returns a repository for one record kind on the named
// driver. The returned close function releases the underlying database and
// is safe to call for the memory driver.
func OpenRepository[T any](driver, path, kind string) (Repository[T], func() error, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", constants.StorageDriverMemory:
		return NewMemory[T](), func() error { return nil }, nil
	case constants.StorageDriverSQLite:
		if strings.TrimSpace(path) == "" {
			path = constants.DefaultSQLitePath
		}
		db, err := Open(path)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLite[T](db, kind), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q: expected %s or %s",
			driver, constants.StorageDriverMemory, constants.StorageDriverSQLite)
	}
}
