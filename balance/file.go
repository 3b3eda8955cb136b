package balance

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/types"
)

// Size is the exact length of a balance file.
const Size = 8

// ByteOrder is the fixed byte order of the on-disk IEEE-754 double.
var ByteOrder = binary.LittleEndian

// Encode returns the 8-byte representation of v.
func Encode(v float64) []byte {
	b := make([]byte, Size)
	ByteOrder.PutUint64(b, math.Float64bits(v))
	return b
}

// Decode parses an 8-byte balance. Anything that is not exactly 8 bytes
// holding a finite non-negative double is ErrCorruptBalance.
func Decode(b []byte) (float64, error) {
	if len(b) != Size {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrCorruptBalance, Size, len(b))
	}
	v := math.Float64frombits(ByteOrder.Uint64(b))
	if !types.ValidAmount(v) {
		return 0, fmt.Errorf("%w: invalid value %v", errs.ErrCorruptBalance, v)
	}
	return v, nil
}

// ReadFile reads and decodes the balance stored at path.
func ReadFile(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read balance file: %w", err)
	}
	v, err := Decode(b)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// WriteFile stores v at path all-or-nothing: the bytes go to a temporary
// file in the same directory which is synced and renamed over path.
func WriteFile(path string, v float64) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp balance file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()           //nolint:errcheck // already failing
			_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	if _, err = tmp.Write(Encode(v)); err != nil {
		return fmt.Errorf("write balance file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync balance file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close balance file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace balance file: %w", err)
	}
	return nil
}
