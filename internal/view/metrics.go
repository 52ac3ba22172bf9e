package view

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "view_loads_total",
	Help: "Resolved view loads by view and result.",
}, []string{"view", "result"})
