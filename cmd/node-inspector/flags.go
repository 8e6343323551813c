package main

import (
	"github.com/spf13/pflag"
)

// bind makes a flag the highest priority source of key.
func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		// flags are registered statically, a nil flag is a programming error
		panic(err)
	}
}
