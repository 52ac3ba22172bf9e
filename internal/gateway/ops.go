package gateway

// Op names a backend capability. It labels errors, spans and metrics.
type Op string

const (
	OpAuthenticate   Op = "authenticate"
	OpRegister       Op = "register"
	OpFetchSelf      Op = "fetch_self"
	OpListEndpoints  Op = "list_endpoints"
	OpGetEndpoint    Op = "get_endpoint"
	OpCreateEndpoint Op = "create_endpoint"
	OpUpdateEndpoint Op = "update_endpoint"
	OpDeleteEndpoint Op = "delete_endpoint"
	OpListChecks     Op = "list_checks"
	OpRunCheckNow    Op = "run_check_now"
	OpDashboardStats Op = "dashboard_stats"
	OpAnalytics      Op = "analytics"
)

var fallbacks = map[Op]string{
	OpAuthenticate:   "Login failed",
	OpRegister:       "Registration failed",
	OpFetchSelf:      "Failed to fetch profile",
	OpListEndpoints:  "Failed to fetch endpoints",
	OpGetEndpoint:    "Failed to fetch endpoint",
	OpCreateEndpoint: "Failed to create",
	OpUpdateEndpoint: "Failed to update",
	OpDeleteEndpoint: "Failed to delete",
	OpListChecks:     "Failed to fetch checks",
	OpRunCheckNow:    "Failed to run check",
	OpDashboardStats: "Failed to fetch dashboard stats",
	OpAnalytics:      "Failed to fetch analytics",
}

// Fallback is the message used when a failed response carries no detail.
func (o Op) Fallback() string {
	if m, ok := fallbacks[o]; ok {
		return m
	}
	return "Request failed"
}
