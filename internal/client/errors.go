package client

import "errors"

// ErrNotSignedIn is returned by commands that need a session when nobody is
// signed in or the remembered session has expired.
var ErrNotSignedIn = errors.New("not signed in, run go-notes to sign in")
