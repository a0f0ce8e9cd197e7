package constants

const (
	ROLE_ADMIN         = "admin"
	ROLE_ORGANIZER     = "organizer"
	ROLE_CUSTOMER      = "customer"
	ROLE_ENTRY_MANAGER = "entry_manager"
	ROLE_SUPPORT       = "support"
)

const (
	MISSING_LOGIN_INPUT  = "Email and password are required"
	INVALID_CREDENTIALS  = "Incorrect email or password"
	EMAIL_ALREADY_EXISTS = "Email already registered"
	MISSING_TOKEN        = "Missing token"
	INVALID_TOKEN        = "Invalid token"
	FORBIDDEN            = "Forbidden"
	ERROR_INTERNAL_ERROR = "Internal server error"

	EVENT_NOT_BOOKABLE   = "Event not available for booking"
	QUOTA_EXCEEDED       = "Total tickets exceed limit for this user"
	SEAT_UNAVAILABLE     = "Some seats are already booked or invalid"
	CAPACITY_EXCEEDED    = "Total seats exceed venue capacity"
	INVALID_ORDER_STATE  = "Invalid order for payment"
	SEAT_MISMATCH        = "Seats are no longer available or invalid"
	INVALID_REFUND_STATE = "Invalid order for refund"
	EVENT_ALREADY_OVER   = "Refund not allowed after event date"
	REFUND_NOT_PENDING   = "Refund request already resolved"

	ENTRY_INVALID_TICKET = "Invalid ticket"
	ENTRY_TICKET_USED    = "Ticket already used"
	ENTRY_TICKET_CANCEL  = "Ticket cancelled"
	ENTRY_TICKET_VALID   = "Valid ticket"
)
