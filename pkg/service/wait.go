package service

import (
	"os"
	"os/signal"
)

// Wait blocks until one of signals arrives and returns it.
func Wait(signals []os.Signal) os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	defer signal.Stop(ch)
	return <-ch
}
