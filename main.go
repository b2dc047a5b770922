package main

import (
	"flag"
	"fmt"
	"sync"
	"time"

	"github.com/go-i2p/logger"

	"github.com/go-i2p/ticktime/lib/config"
	"github.com/go-i2p/ticktime/lib/ntpsync"
	"github.com/go-i2p/ticktime/lib/ticktime"
	"github.com/go-i2p/ticktime/lib/ticktime/clock"
	"github.com/go-i2p/ticktime/lib/ticktime/skew"
	"github.com/go-i2p/ticktime/lib/util/signals"
)

var log = logger.GetGoI2PLogger()

func main() {
	cfgFile := flag.String("config", "", "Path to the config file")
	printInterval := flag.Duration("print-interval", 10*time.Second, "How often to print the clock state")
	flag.Parse()

	config.CfgFile = *cfgFile
	config.InitConfig()
	cfg := config.NewConfigFromViper()
	skew.SetMaxClockSkew(ticktime.FromDuration(cfg.Skew.MaxSkew))

	tickClock := clock.NewClock()
	tickClock.Install()

	var synchronizer *ntpsync.Synchronizer
	if cfg.NTP.Enabled {
		log.Debug("starting NTP clock synchronization")
		synchronizer = ntpsync.NewSynchronizer(&ntpsync.DefaultNTPClient{})
		synchronizer.SetServers(cfg.NTP.Servers)
		synchronizer.SetQueryInterval(cfg.NTP.QueryInterval)
		synchronizer.SetConcurring(cfg.NTP.Concurring)
		synchronizer.AddListener(tickClock)
		synchronizer.Start()
	}

	go signals.Handle()

	done := make(chan struct{})
	var once sync.Once
	signals.RegisterInterruptHandler(func() {
		once.Do(func() { close(done) })
	})
	signals.RegisterReloadHandler(func() {
		config.InitConfig()
		next := config.NewConfigFromViper()
		skew.SetMaxClockSkew(ticktime.FromDuration(next.Skew.MaxSkew))
		if synchronizer != nil {
			synchronizer.SetServers(next.NTP.Servers)
			synchronizer.SetQueryInterval(next.NTP.QueryInterval)
			synchronizer.SetConcurring(next.NTP.Concurring)
			log.Debug("reapplied NTP configuration")
		}
	})

	ticker := time.NewTicker(*printInterval)
	defer ticker.Stop()

	printClockState(tickClock)
	for {
		select {
		case <-ticker.C:
			printClockState(tickClock)
		case <-done:
			if synchronizer != nil {
				synchronizer.Stop()
			}
			signals.StopHandle()
			return
		}
	}
}

func printClockState(c *clock.Clock) {
	now := ticktime.Now()
	sec, usec := now.WallClock()
	fmt.Printf("ticks=%d sec=%d usec=%06d offset=%s\n", now.Ticks(), sec, usec, c.Offset())
}
