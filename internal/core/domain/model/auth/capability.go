package auth

// Capability names a single action a role may be granted.
type Capability string

// Style catalog capabilities.
const (
	ViewStyles  Capability = "VIEW_STYLES"
	CreateStyle Capability = "CREATE_STYLE"
	EditStyle   Capability = "EDIT_STYLE"
	DeleteStyle Capability = "DELETE_STYLE"
	LikeStyle   Capability = "LIKE_STYLE"
)

// Order capabilities.
const (
	CreateOrder         Capability = "CREATE_ORDER"
	ViewOwnOrders       Capability = "VIEW_OWN_ORDERS"
	ViewAllOrders       Capability = "VIEW_ALL_ORDERS"
	ViewAssignedOrders  Capability = "VIEW_ASSIGNED_ORDERS"
	EditOrder           Capability = "EDIT_ORDER"
	CancelOrder         Capability = "CANCEL_ORDER"
	AssignWorker        Capability = "ASSIGN_WORKER"
	UpdateOrderProgress Capability = "UPDATE_ORDER_PROGRESS"
)

// Financial capabilities.
const (
	MakePayment            Capability = "MAKE_PAYMENT"
	ViewOwnPayments        Capability = "VIEW_OWN_PAYMENTS"
	ViewPaymentAmounts     Capability = "VIEW_PAYMENT_AMOUNTS"
	ViewFullFinancials     Capability = "VIEW_FULL_FINANCIALS"
	ManagePaymentProviders Capability = "MANAGE_PAYMENT_PROVIDERS"
)

// Messaging capabilities.
const (
	ChatWithAdmin   Capability = "CHAT_WITH_ADMIN"
	ChatWithManager Capability = "CHAT_WITH_MANAGER"
	ChatWithWorker  Capability = "CHAT_WITH_WORKER"
	ChatWithAnyone  Capability = "CHAT_WITH_ANYONE"
)

// People and team capabilities.
const (
	ManageUsers        Capability = "MANAGE_USERS"
	AssignManager      Capability = "ASSIGN_MANAGER"
	ViewWorkerProfiles Capability = "VIEW_WORKER_PROFILES"
	RateWorker         Capability = "RATE_WORKER"
	ViewHuddles        Capability = "VIEW_HUDDLES"
	CreateHuddle       Capability = "CREATE_HUDDLE"
	ViewAnalytics      Capability = "VIEW_ANALYTICS"
	ViewWorkload       Capability = "VIEW_WORKLOAD"
)
