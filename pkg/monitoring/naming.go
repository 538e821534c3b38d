package monitoring

import "strings"

const metricPrefix = "taskwire_"

// MetricName prefixes a metric name with the service namespace, leaving
// already-prefixed names untouched.
func MetricName(name string) string {
	if strings.HasPrefix(name, metricPrefix) {
		return name
	}
	return metricPrefix + name
}

// MetricNameWithSubsystem builds a namespaced metric name of the form
// taskwire_<subsystem>_<name>.
func MetricNameWithSubsystem(subsystem, name string) string {
	if strings.HasPrefix(name, metricPrefix) {
		return name
	}
	if name == "" {
		return MetricName(subsystem)
	}
	return MetricName(subsystem + "_" + name)
}
