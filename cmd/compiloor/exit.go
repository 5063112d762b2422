package main

import (
	"os"

	"github.com/Wardens-OSS-Club/compiloor/pkg/exitcode"
	"github.com/Wardens-OSS-Club/compiloor/pkg/ui"
)

// exitWithError prints err and exits with the code its kind maps to.
func exitWithError(err error) {
	code, _ := exitcode.FromError(err)
	ui.PrintError(err.Error())
	os.Exit(int(code))
}
