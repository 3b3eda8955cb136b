package staff

import "github.com/caisseplanck/register/errs"

// Directory is an immutable list of identities in load order.
type Directory struct {
	identities []Identity
	byBarcode  map[string]int
}

// NewDirectory builds a directory. Duplicate barcodes are rejected.
func NewDirectory(ids ...Identity) (*Directory, error) {
	d := &Directory{byBarcode: make(map[string]int, len(ids))}
	for _, id := range ids {
		if err := d.add(id); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Directory) add(id Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if _, dup := d.byBarcode[id.Barcode]; dup {
		return errs.Invalid("employee barcode", "duplicate barcode %q", id.Barcode)
	}
	d.byBarcode[id.Barcode] = len(d.identities)
	d.identities = append(d.identities, id)
	return nil
}

// Lookup returns the first identity whose barcode or code equals token.
func (d *Directory) Lookup(token string) (Identity, error) {
	for _, id := range d.identities {
		if id.Matches(token) {
			return id, nil
		}
	}
	return Identity{}, errs.NotFound("employee", token)
}

// Identities returns a copy of the directory in load order.
func (d *Directory) Identities() []Identity {
	out := make([]Identity, len(d.identities))
	copy(out, d.identities)
	return out
}

// Len returns the number of identities.
func (d *Directory) Len() int { return len(d.identities) }
