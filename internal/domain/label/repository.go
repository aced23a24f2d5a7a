package label

import (
	"github.com/techlabel/backend/internal/domain/shared"
)

// PrintJobRepository persists print job records. FindAll and Count
// honor the "kind" and "status" filter keys.
type PrintJobRepository interface {
	shared.Repository[PrintJob]
}
