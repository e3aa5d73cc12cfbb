package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores de construcción del catálogo: entidades creadas y rechazadas por tipo,
// más el tamaño de la última lista de reposición.
type Metrics struct {
	EntitiesCreated      *prometheus.CounterVec
	EntitiesRejected     *prometheus.CounterVec
	ReplenishmentPending prometheus.Gauge
}

// New registra las métricas en reg. Con reg nil se usa un registro propio, útil en tests
// y en herramientas que no exponen /metrics.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		EntitiesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_entities_created_total",
			Help: "Total de entidades construidas con éxito, por tipo",
		}, []string{"entity"}),
		EntitiesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_entities_rejected_total",
			Help: "Total de construcciones rechazadas por validación, por tipo",
		}, []string{"entity"}),
		ReplenishmentPending: f.NewGauge(prometheus.GaugeOpts{
			Name: "inventario_replenishment_pending",
			Help: "Productos en o bajo su punto de reorden en la última evaluación",
		}),
	}
}

// Observe registra el resultado de una construcción. Un receptor nil no hace nada.
func (m *Metrics) Observe(entity string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.EntitiesRejected.WithLabelValues(entity).Inc()
		return
	}
	m.EntitiesCreated.WithLabelValues(entity).Inc()
}

// SetReplenishmentPending fija el número de sugerencias de reposición vigentes.
func (m *Metrics) SetReplenishmentPending(n int) {
	if m == nil {
		return
	}
	m.ReplenishmentPending.Set(float64(n))
}
