package main

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/KARAN3690/Marketplace/cmd/assistant"

var logger = otelslog.NewLogger(scopeName)
