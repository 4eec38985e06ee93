// Package singleinstance keeps one overlay per login session. A second
// overlay would install a second global hook and double every event.
package singleinstance

import "errors"

// ErrAlreadyRunning means another overlay in this session holds the lock
var ErrAlreadyRunning = errors.New("input viewer is already running in this session")
