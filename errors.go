/*
 *  errors.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import "errors"

var (
	// ErrEntryNotFound is returned when no label matches the pattern
	ErrEntryNotFound = errors.New("acosbh: entry vertex not found")

	// ErrConfiguration means the run cannot start: bad parameters or the
	// start fragment is missing from the spectrum
	ErrConfiguration = errors.New("acosbh: configuration error")

	// ErrSearchDeadEnd means a walk had no viable extension
	ErrSearchDeadEnd = errors.New("acosbh: search dead end")

	// ErrWorkerFailure means a cycle collected fewer results than ants launched
	ErrWorkerFailure = errors.New("acosbh: worker failure")
)
