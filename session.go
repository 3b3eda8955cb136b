package register

import (
	"context"

	"github.com/caisseplanck/register/staff"
)

// Login resolves token by employee barcode or permanent code. Logging in
// over another employee's session logs that employee out first, which
// clears their order. A failed login leaves the session untouched.
func (r *Register) Login(ctx context.Context, token string) (staff.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.session.Current()
	who, err := r.session.Login(r.staff, token)
	if err != nil {
		r.logger.Info("login failed", "operator", r.session.Name())
		r.plugins.EmitLoginFailed(ctx, token, err)
		return staff.Identity{}, err
	}

	if prev != nil {
		r.order.Clear()
		r.logger.Info("employee logged out", "name", prev.Name)
		r.plugins.EmitLogout(ctx, *prev)
	}

	r.logger.Info("employee logged in", "name", who.Name, "level", who.Level)
	r.plugins.EmitLogin(ctx, who)
	return who, nil
}

// Logout ends the session and clears the order. It is a no-op when nobody
// is logged in.
func (r *Register) Logout(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logout(ctx)
}

func (r *Register) logout(ctx context.Context) {
	who, ok := r.session.Logout()
	if !ok {
		return
	}
	r.order.Clear()
	r.logger.Info("employee logged out", "name", who.Name)
	r.plugins.EmitLogout(ctx, who)
}

// Operator returns the logged-in employee's name, or "None".
func (r *Register) Operator() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Name()
}

// Session returns a copy of the logged-in identity, or nil.
func (r *Register) Session() *staff.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Current()
}
