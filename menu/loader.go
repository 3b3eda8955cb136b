package menu

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/internal/records"
	"github.com/caisseplanck/register/types"
)

// CategoryMarker starts a category record.
const CategoryMarker = "#"

// ParseError describes one skipped record.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("menu: line %d: %s", e.Line, e.Reason)
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

// Records parses menu records lazily. Category records are consumed and
// update the running category and default price; every other line yields
// either an item or a *ParseError.
func Records(r io.Reader) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		category := DefaultCategory
		var defaultPrice *float64

		for line, err := range records.Lines(r) {
			if err != nil {
				if !yield(Item{}, &ParseError{Line: line.Number, Reason: err.Error()}) {
					return
				}
				continue
			}
			bad := func(format string, args ...any) bool {
				return yield(Item{}, &ParseError{Line: line.Number, Text: line.Text, Reason: fmt.Sprintf(format, args...)})
			}

			f := line.Fields
			if len(f) < 2 || len(f) > 4 {
				if !bad("expected 2 to 4 fields, got %d", len(f)) {
					return
				}
				continue
			}

			if strings.HasPrefix(f[0], CategoryMarker) {
				name := strings.TrimSpace(strings.TrimPrefix(f[0], CategoryMarker))
				price, perr := parsePrice(f[1])
				switch {
				case len(f) != 2:
					perr = fmt.Errorf("category record takes 2 fields, got %d", len(f))
				case name == "":
					perr = fmt.Errorf("empty category name")
				}
				if perr != nil {
					if !bad("%v", perr) {
						return
					}
					continue
				}
				category, defaultPrice = name, &price
				continue
			}

			var (
				price    float64
				shortcut string
			)
			switch len(f) {
			case 2:
				if defaultPrice == nil {
					if !bad("no price and no category default price") {
						return
					}
					continue
				}
				price = *defaultPrice
			case 4:
				shortcut = f[3]
				if shortcut == "" {
					if !bad("empty shortcut") {
						return
					}
					continue
				}
				fallthrough
			case 3:
				p, perr := parsePrice(f[2])
				if perr != nil {
					if !bad("%v", perr) {
						return
					}
					continue
				}
				price = p
			}

			it, verr := NewItem(f[1], price, f[0], category, shortcut)
			if verr != nil {
				if !bad("%v", verr) {
					return
				}
				continue
			}
			if !yield(it, nil) {
				return
			}
		}
	}
}

// Load builds a menu from r. Malformed and duplicate records are skipped and
// collected in the report; a single warning is logged when any were skipped.
// Load never fails.
func Load(r io.Reader, opts ...LoadOption) (*Menu, Report) {
	cfg := loadConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Menu{byBarcode: make(map[string]int)}
	var rep Report
	for it, err := range Records(r) {
		if err != nil {
			rep.Skipped.Add(err)
			continue
		}
		if err := m.add(it); err != nil {
			rep.Skipped.Add(err)
			continue
		}
		rep.Loaded++
	}

	if rep.Skipped.HasErrors() {
		cfg.logger.Warn("some lines of the menu contained errors and were ignored",
			"skipped", len(rep.Skipped.Errors),
			"loaded", rep.Loaded,
		)
	}
	return m, rep
}

// LoadFile opens path and loads it with Load. Only failing to open the file
// is an error.
func LoadFile(path string, opts ...LoadOption) (*Menu, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()

	m, rep := Load(f, opts...)
	return m, rep, nil
}

func parsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if !types.ValidAmount(p) {
		return 0, fmt.Errorf("price %q must be a non-negative number", s)
	}
	return p, nil
}
