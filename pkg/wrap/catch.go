// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wrap

type constructPanic struct {
	err error
}

func (cp *constructPanic) Error() string {
	return "element construction failed: " + cp.err.Error()
}

func (cp *constructPanic) Unwrap() error {
	return cp.err
}

// Catch runs an expression style tree build.  the first failing New/With aborts
// the build and its factory error is returned as-is.  other panics propagate.
func Catch(buildFn func() *Element) (rtn *Element, rtnErr error) {
	defer func() {
		recoverVal := recover()
		if recoverVal == nil {
			return
		}
		cp, ok := recoverVal.(*constructPanic)
		if !ok {
			panic(recoverVal)
		}
		rtn = nil
		rtnErr = cp.err
	}()
	return buildFn(), nil
}
