package capture

import "github.com/prometheus/client_golang/prometheus"

var _ prometheus.Collector = (*Device)(nil)

type prometheusDesc struct {
	Written, Dropped, Skipped, Acquired, Released, Outstanding, Slots *prometheus.Desc
}

func (d *prometheusDesc) init(device string) {
	labels := prometheus.Labels{"device": device}
	d.Written = prometheus.NewDesc("capture_frames_written_total", "Frames stored in a slot", nil, labels)
	d.Dropped = prometheus.NewDesc("capture_frames_dropped_total", "Frames dropped because every slot was held", nil, labels)
	d.Skipped = prometheus.NewDesc("capture_slots_skipped_total", "Held slots passed over by the producer", nil, labels)
	d.Acquired = prometheus.NewDesc("capture_frames_acquired_total", "Frames handed to consumers", nil, labels)
	d.Released = prometheus.NewDesc("capture_frames_released_total", "Frames given back by consumers", nil, labels)
	d.Outstanding = prometheus.NewDesc("capture_frames_outstanding", "Frames currently held by consumers", nil, labels)
	d.Slots = prometheus.NewDesc("capture_slots", "Slots in the queue", nil, labels)
}

func (d *Device) Describe(ch chan<- *prometheus.Desc) {
	desc := &d.desc
	ch <- desc.Written
	ch <- desc.Dropped
	ch <- desc.Skipped
	ch <- desc.Acquired
	ch <- desc.Released
	ch <- desc.Outstanding
	ch <- desc.Slots
}

func (d *Device) Collect(ch chan<- prometheus.Metric) {
	desc, stats := &d.desc, d.queue.Stats()
	ch <- prometheus.MustNewConstMetric(desc.Written, prometheus.CounterValue, float64(stats.Written))
	ch <- prometheus.MustNewConstMetric(desc.Dropped, prometheus.CounterValue, float64(stats.Dropped))
	ch <- prometheus.MustNewConstMetric(desc.Skipped, prometheus.CounterValue, float64(stats.Skipped))
	ch <- prometheus.MustNewConstMetric(desc.Acquired, prometheus.CounterValue, float64(stats.Acquired))
	ch <- prometheus.MustNewConstMetric(desc.Released, prometheus.CounterValue, float64(stats.Released))
	ch <- prometheus.MustNewConstMetric(desc.Outstanding, prometheus.GaugeValue, float64(stats.Outstanding))
	ch <- prometheus.MustNewConstMetric(desc.Slots, prometheus.GaugeValue, float64(stats.Slots))
}
