// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package match

import "github.com/danos/mgmterror"

// errCyclicReference reports a Reference chain that never bottoms out
// in a Reference-free subtree within maxExpansionDepth hops — a
// grammar-authoring mistake, not a matching failure (spec §7:
// "Grammar inconsistency... propagated from the expansion callback;
// matcher treats as resource failure").
func errCyclicReference() error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = "reference expansion did not terminate; likely a cyclic treeref"
	return e
}
