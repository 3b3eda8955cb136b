package staff

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/internal/records"
)

// ParseError describes one skipped employee record.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("staff: line %d: %s", e.Line, e.Reason)
}

// Is matches errs.ErrValidation.
func (e *ParseError) Is(target error) bool { return target == errs.ErrValidation }

// Report summarizes a load.
type Report struct {
	Loaded  int
	Skipped errs.MultiError
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives the end-of-load warning.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = logger }
}

// Records parses `name|barcode|code|level` records lazily.
func Records(r io.Reader) iter.Seq2[Identity, error] {
	return func(yield func(Identity, error) bool) {
		for line, err := range records.Lines(r) {
			if err != nil {
				if !yield(Identity{}, &ParseError{Line: line.Number, Reason: err.Error()}) {
					return
				}
				continue
			}

			f := line.Fields
			if len(f) != 4 {
				if !yield(Identity{}, &ParseError{Line: line.Number, Reason: fmt.Sprintf("expected 4 fields, got %d", len(f))}) {
					return
				}
				continue
			}
			level, perr := strconv.Atoi(f[3])
			if perr != nil {
				if !yield(Identity{}, &ParseError{Line: line.Number, Reason: fmt.Sprintf("invalid level %q", f[3])}) {
					return
				}
				continue
			}
			id, verr := NewIdentity(f[0], f[1], f[2], Level(level))
			if verr != nil {
				if !yield(Identity{}, &ParseError{Line: line.Number, Reason: verr.Error()}) {
					return
				}
				continue
			}
			if !yield(id, nil) {
				return
			}
		}
	}
}

// Load builds a directory from r, skipping malformed and duplicate records.
// Load never fails.
func Load(r io.Reader, opts ...LoadOption) (*Directory, Report) {
	cfg := loadConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Directory{byBarcode: make(map[string]int)}
	var rep Report
	for id, err := range Records(r) {
		if err != nil {
			rep.Skipped.Add(err)
			continue
		}
		if err := d.add(id); err != nil {
			rep.Skipped.Add(err)
			continue
		}
		rep.Loaded++
	}

	if rep.Skipped.HasErrors() {
		cfg.logger.Warn("some lines of the employee file contained errors and were ignored",
			"skipped", len(rep.Skipped.Errors),
			"loaded", rep.Loaded,
		)
	}
	return d, rep
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, opts ...LoadOption) (*Directory, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("open employees file: %w", err)
	}
	defer f.Close()

	d, rep := Load(f, opts...)
	return d, rep, nil
}
