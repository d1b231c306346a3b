package domain

// ConnectivityState is the classified outcome of one check round.
type ConnectivityState string

const (
	StateUp           ConnectivityState = "UP"
	StateGatewayDown  ConnectivityState = "GATEWAY_DOWN"
	StateInternetDown ConnectivityState = "INTERNET_DOWN"
	// StateUnknown is the display-only state before any check has completed.
	// It is never assigned to a stored CheckRecord.
	StateUnknown ConnectivityState = "UNKNOWN"
)

// AnomalyPolicy decides how to classify the odd case where the gateway probe
// failed but the internet probe still succeeded.
type AnomalyPolicy string

const (
	// AnomalyGatewayDown treats the case as a gateway failure: internet
	// reachability without a reachable gateway is a measurement anomaly.
	AnomalyGatewayDown AnomalyPolicy = "gateway_down"
	// AnomalyUp trusts the internet probe and reports UP.
	AnomalyUp AnomalyPolicy = "up"
)

// Classify maps one probe round to a connectivity state.
//
//	gateway=true  internet=true  -> UP
//	gateway=true  internet=false -> INTERNET_DOWN
//	gateway=false internet=false -> GATEWAY_DOWN
//	gateway=false internet=true  -> per policy (default GATEWAY_DOWN)
func Classify(gatewayReachable, internetReachable bool, policy AnomalyPolicy) ConnectivityState {
	switch {
	case gatewayReachable && internetReachable:
		return StateUp
	case gatewayReachable:
		return StateInternetDown
	case internetReachable && policy == AnomalyUp:
		return StateUp
	default:
		return StateGatewayDown
	}
}
