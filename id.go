package register

import "github.com/caisseplanck/register/id"

// ID is the identifier type for receipts, adjustments, counts and audit entries.
type ID = id.ID

// Prefix identifies the record type encoded in a TypeID.
type Prefix = id.Prefix
