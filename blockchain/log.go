// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/btcsuite/btclog"

// log is the package-wide logger instance used throughout blockchain. It
// is disabled by default so packages importing blockchain don't have to
// instantiate a logger of their own just to silence output; the host
// application calls UseLogger to wire one up.
var log = btclog.Disabled

// UseLogger sets the package-wide logger used by this package. Calling
// this is optional, and should be performed by the caller if the
// caller is also using btclog.
func UseLogger(logger btclog.Logger) {
	log = logger
}
