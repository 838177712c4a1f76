// Package authfakes provides hand-written fakes for the session controller's
// collaborator boundaries.
package authfakes

import (
	"context"
	"sync"

	"github.com/devicepulse/console/auth"
)

var _ auth.Gateway = (*FakeGateway)(nil)

// FakeGateway returns canned credentials or a canned error and records every
// call it receives.
type FakeGateway struct {
	Credentials *auth.Credentials
	Err         error

	lock  sync.Mutex
	calls []LoginCall
}

type LoginCall struct {
	UserName string
	Password string
}

func (g *FakeGateway) Login(_ context.Context, userName, password string) (*auth.Credentials, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.calls = append(g.calls, LoginCall{UserName: userName, Password: password})
	if g.Err != nil {
		return nil, g.Err
	}
	creds := *g.Credentials
	creds.UserName = userName
	return &creds, nil
}

func (g *FakeGateway) Calls() []LoginCall {
	g.lock.Lock()
	defer g.lock.Unlock()
	return append([]LoginCall{}, g.calls...)
}

var _ auth.Navigator = (*FakeNavigator)(nil)

// FakeNavigator records redirects. ConstantRoute controls whether the active
// route counts as reachable without authentication.
type FakeNavigator struct {
	ConstantRoute bool

	ToLoginCalls int
	ToHomeCalls  int
}

func (n *FakeNavigator) ToLogin() {
	n.ToLoginCalls++
}

func (n *FakeNavigator) ToHome() {
	n.ToHomeCalls++
}

func (n *FakeNavigator) CurrentRouteConstant() bool {
	return n.ConstantRoute
}

var _ auth.Notifier = (*FakeNotifier)(nil)

// FakeNotifier records the success and error signals it receives.
type FakeNotifier struct {
	Successes []SuccessNotification
	Errors    []string
}

type SuccessNotification struct {
	Title   string
	Message string
}

func (n *FakeNotifier) Success(title, message string) {
	n.Successes = append(n.Successes, SuccessNotification{Title: title, Message: message})
}

func (n *FakeNotifier) Error(message string) {
	n.Errors = append(n.Errors, message)
}

var _ auth.Resetter = (*FakeResetter)(nil)

// FakeResetter counts reset instructions.
type FakeResetter struct {
	ResetCalls int
}

func (r *FakeResetter) ResetState() {
	r.ResetCalls++
}
