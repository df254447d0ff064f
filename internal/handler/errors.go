package handler

import "errors"

var errNoHandlersAreCreated = errors.New("no handlers are created: no transport address configured")
