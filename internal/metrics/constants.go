package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Ledger metric names
const (
	MetricNameCreditsGranted    = "ledger_credits_granted_total"
	MetricNameCreditsDeducted   = "ledger_credits_deducted_total"
	MetricNameItemsGranted      = "ledger_items_granted_total"
	MetricNameItemsRemoved      = "ledger_items_removed_total"
	MetricNamePurchases         = "ledger_purchases_total"
	MetricNameRejections        = "ledger_rejections_total"
	MetricNameCharactersCreated = "characters_created_total"
	MetricNameCharactersDeleted = "characters_deleted_total"
	MetricNamePendingSwept      = "pending_selections_swept_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Ledger metric help text
const (
	HelpTextCreditsGranted    = "Total credits added to characters"
	HelpTextCreditsDeducted   = "Total credits removed from characters, including purchases"
	HelpTextItemsGranted      = "Total item quantity granted, by canonical item name"
	HelpTextItemsRemoved      = "Total item quantity removed, by canonical item name"
	HelpTextPurchases         = "Total completed shop purchases, by item"
	HelpTextRejections        = "Ledger operations refused by a business rule, by operation and reason"
	HelpTextCharactersCreated = "Total characters created through slot selection"
	HelpTextCharactersDeleted = "Total characters deleted"
	HelpTextPendingSwept      = "Total abandoned slot selections removed by the sweeper"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelItem      = "item"
	LabelOperation = "operation"
	LabelReason    = "reason"
)

// Rejection reasons
const (
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonAlreadyOwned      = "already_owned"
	ReasonNotOwned          = "not_owned"
	ReasonNotEnough         = "not_enough"
	ReasonNotFound          = "not_found"
	ReasonSlotOccupied      = "slot_occupied"
	ReasonNotPromptOwner    = "not_prompt_owner"
	ReasonInvalidInput      = "invalid_input"
	ReasonOther             = "other"
)

// LabelUnmatchedRoute labels requests no route matched
const LabelUnmatchedRoute = "unmatched"

// HTTPLatencyBuckets covers 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
