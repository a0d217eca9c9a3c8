package main

import (
	"net/http"
	_ "net/http/pprof"

	"ribbons/misc"
)

const PprofAddr = "localhost:6060"

func StartPprof() {
	DebugPutsPersist("pprof", PprofAddr)
	go func() {
		misc.InfoLogger.Print("initializing pprof")
		misc.InfoLogger.Print(http.ListenAndServe(PprofAddr, nil))
	}()
}
