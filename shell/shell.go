// Package shell is the till's line-oriented command interpreter.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/staff"
	"github.com/caisseplanck/register/types"
)

// Engine is the register surface the shell drives.
type Engine interface {
	Login(ctx context.Context, token string) (staff.Identity, error)
	Logout(ctx context.Context)
	Session() *staff.Identity
	Add(ctx context.Context, token string) (order.Line, error)
	AddCustom(ctx context.Context, name string, price float64) (order.Line, error)
	Remove(ctx context.Context, token string) (order.Line, error)
	OrderString() (string, error)
	OrderTotal() (float64, error)
	Checkout(ctx context.Context) (*order.Receipt, error)
	ReadBalance() (float64, error)
	Adjust(ctx context.Context, amount float64) (balance.Adjustment, error)
	Reconcile(ctx context.Context, count float64) (balance.Reconciliation, error)
}

// DefaultPrompt is shown while nobody is logged in.
const DefaultPrompt = "caisse-planck > "

// Shell reads one command per line and runs it against an Engine.
type Shell struct {
	engine Engine
	out    io.Writer
	prompt string
	logger *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the prompt shown while nobody is logged in.
func WithPrompt(prompt string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) { s.logger = logger }
}

// New creates a Shell writing to out.
func New(engine Engine, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		engine: engine,
		out:    out,
		prompt: DefaultPrompt,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt returns "<operator> > " while someone is logged in, the
// configured prompt otherwise.
func (s *Shell) Prompt() string {
	if who := s.engine.Session(); who != nil {
		return who.Name + " > "
	}
	return s.prompt
}

// Run reads commands from in until quit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.Prompt())
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if s.Execute(ctx, sc.Text()) {
			return nil
		}
	}
}

// Execute runs a single command line and reports whether the shell should
// quit. Failures are printed and never returned.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit":
		return true
	case "help":
		s.help()
	case "login":
		if len(args) < 1 {
			s.warn("need a login token")
			return false
		}
		if _, err := s.engine.Login(ctx, args[0]); err != nil {
			s.warn(fmt.Sprintf("invalid employee token %q, unable to login", args[0]))
		}
	case "logout":
		s.engine.Logout(ctx)
	case "print_count":
		v, err := s.engine.ReadBalance()
		if err != nil {
			s.fail("print register count", err)
			return false
		}
		s.println(types.Format(v))
	case "print_order":
		text, err := s.engine.OrderString()
		if err != nil {
			s.fail("print current order", err)
			return false
		}
		if text != "" {
			s.println(text)
		}
	case "total":
		v, err := s.engine.OrderTotal()
		if err != nil {
			s.fail("print order total", err)
			return false
		}
		s.println(types.Format(v))
	case "remove":
		if len(args) < 1 {
			s.warn("need an item to remove")
			return false
		}
		l, err := s.engine.Remove(ctx, args[0])
		if err != nil {
			s.fail("remove an item", err)
			return false
		}
		s.println(l.String())
	case "adjust_count":
		if len(args) < 1 {
			s.warn("need an adjustment amount")
			return false
		}
		amount, err := parseAmount(args[0])
		if err != nil {
			s.warn(fmt.Sprintf("invalid adjustment amount %q", args[0]))
			return false
		}
		adj, err := s.engine.Adjust(ctx, amount)
		if err != nil {
			s.fail("adjust register count", err)
			return false
		}
		s.println(fmt.Sprintf("register count %s -> %s", types.Format(adj.Old), types.Format(adj.New)))
	case "custom":
		if len(args) < 2 {
			s.warn("need a name and a price")
			return false
		}
		price, err := parseAmount(args[1])
		if err != nil {
			s.warn(fmt.Sprintf("price %q is not valid", args[1]))
			return false
		}
		l, err := s.engine.AddCustom(ctx, args[0], price)
		if err != nil {
			s.fail("add a custom item", err)
			return false
		}
		s.println(l.String())
	case "checkout":
		r, err := s.engine.Checkout(ctx)
		if err != nil {
			s.fail("checkout order", err)
			return false
		}
		s.println(fmt.Sprintf("total %s, register count %s", types.Format(r.Total), types.Format(r.BalanceAfter)))
	case "count":
		if len(args) < 1 {
			s.warn("need a register count")
			return false
		}
		count, err := parseAmount(args[0])
		if err != nil {
			s.warn(fmt.Sprintf("invalid count %q", args[0]))
			return false
		}
		rec, err := s.engine.Reconcile(ctx, count)
		if err != nil {
			s.fail("count register", err)
			return false
		}
		if rec.Balanced() {
			s.println("count matches register count")
		} else {
			s.println(fmt.Sprintf("count mismatch: discrepancy %s", types.Format(rec.Discrepancy)))
		}
	default:
		l, err := s.engine.Add(ctx, cmd)
		if err != nil {
			s.fail("add an item", err)
			return false
		}
		s.println(l.String())
	}
	return false
}

const helpText = `commands:
  <token>                 scan an item by barcode or shortcut
  login <token>           log in by badge barcode or code
  logout                  log out and clear the order
  remove <token>          remove one unit of an item
  custom <name> <price>   add an item that is not on the menu
  print_order             show the current order
  total                   show the order total
  checkout                add the order to the register count
  print_count             show the register count
  adjust_count <amount>   add to or withdraw from the register count
  count <amount>          compare a physical count with the register count
  q, quit                 exit`

func (s *Shell) help() { s.println(helpText) }

// fail prints one line describing why action was refused.
func (s *Shell) fail(action string, err error) {
	var msg string
	switch {
	case errors.Is(err, errs.ErrNoSession):
		msg = "no employee logged in, unable to " + action
	case errs.IsCredential(err):
		msg = "insufficient privileges to " + action
	case errs.IsNotFound(err):
		var nf *errs.NotFoundError
		if errors.As(err, &nf) && nf.Kind == "order line" {
			msg = "item not in order, unable to " + action
		} else {
			msg = "token does not correspond to any item"
		}
	default:
		msg = fmt.Sprintf("unable to %s: %v", action, err)
	}
	s.warn(msg)
}

func (s *Shell) warn(msg string) {
	s.logger.Warn(msg)
	s.println("warning: " + msg)
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

// parseAmount reads a decimal amount such as "2.5" or "-10".
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
