package account

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	dispatchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stark_wallet",
		Subsystem: "account",
		Name:      "dispatch_total",
		Help:      "number of wallet interactions, by variant, interaction kind and result",
	}, []string{"variant", "choice", "result"})
)

func init() {
	prometheus.MustRegister(dispatchCounter)
}

func observeDispatch(variant Variant, choice InteractChoice, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	dispatchCounter.WithLabelValues(string(variant), choice.Name(), result).Inc()
}
