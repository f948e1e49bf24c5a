package main

import (
	"log"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/lixenwraith/solo-pong/core"
)

const statsPath = "/debug/statsview"

// startStatsView serves runtime charts and pprof at addr until Stop is called
func startStatsView(addr string) *statsview.ViewManager {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	core.Go(mgr.Start)
	log.Printf("solopong: stats server at http://%s%s", addr, statsPath)
	return mgr
}
