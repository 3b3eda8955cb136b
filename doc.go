// Package register provides the engine of a single-till point-of-sale
// register.
//
// A Register authenticates an operator, accumulates scanned menu items into
// an in-memory order, and folds the order total into a persisted register
// count on checkout. Everything an operator does is written to an audit
// trail with three streams: events, transactions and counts.
//
// # Quick Start
//
//	m, _, err := menu.LoadFile("menu.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dir, _, err := staff.LoadFile("employees.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l, err := balance.Open("register_count.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sink, err := audit.OpenDir("logs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sink.Close()
//
//	r := register.New(m, dir, l, register.WithAuditSink(sink))
//	if err := r.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Stop()
//
//	r.Login(ctx, "1111")
//	r.Add(ctx, "001")
//	receipt, err := r.Checkout(ctx)
//
// # Privilege levels
//
// Employees hold one of three levels:
//
//   - 0 (clerk): scan and remove items, view the order
//   - 1 (cashier): custom items and checkout
//   - 2 (manager): view, adjust and reconcile the register count
//
// An operation refused for lack of privilege returns a *CredentialError
// and changes nothing.
//
// # Register count
//
// The register count is the physical currency in the till. It is stored
// as an 8-byte little-endian IEEE-754 double, rewritten atomically on every
// change, and never goes negative: a withdrawal larger than the count is a
// *ValidationError. Amounts are added with decimal arithmetic, so
// 11.57 + 2.5 is exactly 14.07.
//
// # TypeID
//
// Receipts, adjustments, counts and audit entries carry TypeIDs:
//
//	txn_01h2xcejqtf2nbrexx3vqjhp41  // checkout receipt
//	adj_01h2xcejqtf2nbrexx3vqjhp41  // register count adjustment
//	cnt_01h455vb4pex5vsknk084sn02q  // reconciliation
//	aud_01h455vb4pex5vsknk084sn02q  // audit entry
package register
