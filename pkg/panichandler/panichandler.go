// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package panichandler

import (
	"fmt"
	"log"
	"runtime/debug"
)

// PanicError is returned by PanicHandler, it keeps the stack of the panicking goroutine
type PanicError struct {
	Where string
	Val   any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Where, e.Val)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Val.(error); ok {
		return err
	}
	return nil
}

// PanicHandler converts a recovered value into a *PanicError (nil if there was no panic).
// call it from a deferred func: err = panichandler.PanicHandler("render", recover())
func PanicHandler(debugStr string, recoverVal any) error {
	if recoverVal == nil {
		return nil
	}
	stack := debug.Stack()
	log.Printf("[panic] in %s: %v\n%s", debugStr, recoverVal, stack)
	return &PanicError{Where: debugStr, Val: recoverVal, Stack: stack}
}
