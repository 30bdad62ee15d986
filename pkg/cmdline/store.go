// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

// Store supplies the catalog for a run. The Utility calls each method once
// per Parse. Loads must be idempotent: the same *Option values every time.
// Actions should be fresh per call if the Store is reused across runs.
type Store interface {
	LoadSupportedOptions() ([]*Option, error)
	LoadSupportedActions() ([]Action, error)
}
